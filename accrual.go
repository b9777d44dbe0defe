package bondyield

import (
	"slices"

	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// Accrual is the daily interest per 100 face of one instrument.
type Accrual struct {
	perDay date.History[decimal.Decimal]
}

// NewAccrual expands coupon periods into a daily interest series restricted to window.
//
// Each period accrues Interest / AccrualDays on every day of [Start, End-1]: the end
// date is the first day of the next period. When periods overlap, the one starting
// last wins. Periods with no accrual day are ignored.
func NewAccrual(periods []CashFlowPeriod, window date.Range) *Accrual {
	a := new(Accrual)
	sorted := slices.Clone(periods)
	slices.SortStableFunc(sorted, func(x, y CashFlowPeriod) int { return x.Start.Compare(y.Start) })
	for _, p := range sorted {
		if p.AccrualDays <= 0 {
			continue
		}
		rate := p.Interest.Div(decimal.NewFromInt(int64(p.AccrualDays)))
		accruing := date.NewRange(p.Start, p.End.Add(-1)).Intersect(window)
		for day := range accruing.Days() {
			a.perDay.Append(day, rate)
		}
	}
	return a
}

// PerDay returns the interest accrued on day per 100 face, 0 if no period covers it.
func (a *Accrual) PerDay(day date.Date) decimal.Decimal {
	v, _ := a.perDay.Get(day)
	return v
}

// Covers reports whether a coupon period covers day.
func (a *Accrual) Covers(day date.Date) bool {
	_, ok := a.perDay.Get(day)
	return ok
}
