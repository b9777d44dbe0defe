package bondyield

import (
	"fmt"

	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// Par is the nominal price of an instrument, per 100 face.
var Par = decimal.NewFromInt(100)

// ValuationDefaultPolicy defines the mark price used when an instrument has no
// valuation at or before a day.
type ValuationDefaultPolicy int

const (
	// ParValue marks the instrument at par (100).
	ParValue ValuationDefaultPolicy = iota
)

func (p ValuationDefaultPolicy) String() string {
	switch p {
	case ParValue:
		return "par"
	default:
		return "unknown"
	}
}

// Price returns the default mark price.
func (p ValuationDefaultPolicy) Price() decimal.Decimal { return Par }

// ParseValuationDefaultPolicy parses a string into a ValuationDefaultPolicy.
func ParseValuationDefaultPolicy(s string) (ValuationDefaultPolicy, error) {
	switch s {
	case "par", "":
		return ParValue, nil
	default:
		return 0, fmt.Errorf("unknown valuation default policy: %q", s)
	}
}

// CostPriceFallbackPolicy defines how a missing prior-day cost net price is
// substituted when computing a realized capital gain.
type CostPriceFallbackPolicy int

const (
	// CarryForwardThenPar uses the most recent known cost net price before the
	// missing day, or par if the instrument has none.
	CarryForwardThenPar CostPriceFallbackPolicy = iota
	// ParOnly uses par straight away.
	ParOnly
)

func (p CostPriceFallbackPolicy) String() string {
	switch p {
	case CarryForwardThenPar:
		return "carry-forward-then-par"
	case ParOnly:
		return "par-only"
	default:
		return "unknown"
	}
}

// ParseCostPriceFallbackPolicy parses a string into a CostPriceFallbackPolicy.
func ParseCostPriceFallbackPolicy(s string) (CostPriceFallbackPolicy, error) {
	switch s {
	case "carry-forward-then-par", "":
		return CarryForwardThenPar, nil
	case "par-only", "par":
		return ParOnly, nil
	default:
		return 0, fmt.Errorf("unknown cost price fallback policy: %q", s)
	}
}

// fallback returns the substitute for a missing cost net price on day, searching
// the timeline before day when the policy allows it.
func (p CostPriceFallbackPolicy) fallback(tl *Timeline, day date.Date) decimal.Decimal {
	if p == CarryForwardThenPar {
		if price, ok := tl.CostNetPriceAsOf(day); ok {
			return price
		}
	}
	return Par
}
