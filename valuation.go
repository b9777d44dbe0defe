package bondyield

import (
	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// PriceSource tells where a resolved mark price comes from.
type PriceSource int

const (
	// Actual is a valuation of that very day.
	Actual PriceSource = iota
	// Carried is the latest earlier valuation.
	Carried
	// Defaulted comes from the ValuationDefaultPolicy.
	Defaulted
)

func (s PriceSource) String() string {
	switch s {
	case Actual:
		return "actual"
	case Carried:
		return "carried"
	case Defaulted:
		return "default"
	default:
		return "unknown"
	}
}

// Valuation resolves the daily mark net price of one instrument.
type Valuation struct {
	prices date.History[decimal.Decimal]
	policy ValuationDefaultPolicy
}

// NewValuation returns the resolver of an instrument's valuations. records are
// expected to cover the query range widened by a lookback window.
func NewValuation(records []ValuationRecord, policy ValuationDefaultPolicy) *Valuation {
	v := &Valuation{policy: policy}
	for _, r := range records {
		v.prices.Append(r.Date, r.NetPrice)
	}
	return v
}

// Empty reports whether the instrument has no valuation at all.
func (v *Valuation) Empty() bool { return v.prices.Len() == 0 }

// Price returns the mark price on day: the valuation of that day, else the latest
// earlier one, else the default price. Days before the first valuation get the
// default price even if later valuations exist.
func (v *Valuation) Price(day date.Date) (decimal.Decimal, PriceSource) {
	if p, ok := v.prices.Get(day); ok {
		return p, Actual
	}
	if p, ok := v.prices.ValueAsOf(day); ok {
		return p, Carried
	}
	return v.policy.Price(), Defaulted
}
