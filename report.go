package bondyield

import (
	"slices"

	"github.com/etnz/bondyield/date"
	"github.com/google/uuid"
)

// Request is what a caller asks the engine for.
type Request struct {
	Range date.Range
	Scope Scope
	// Codes restricts the instruments, empty means every instrument held.
	Codes []string
}

// Report is the attribution computed for a Request. It is immutable: every
// accessor returns a fresh copy, so that a cached report can be shared.
type Report struct {
	ID       string
	Request  Request
	Currency string
	Catalog  *Catalog

	daily    []DailyAttribution // sorted by code then date
	holdings []Holding
	trades   []TradeRecord
}

func newReport(req Request, currency string) *Report {
	req.Codes = slices.Clone(req.Codes)
	return &Report{
		ID:       uuid.NewString(),
		Request:  req,
		Currency: currency,
		Catalog:  NewCatalog(nil),
	}
}

// Range returns the range of the report.
func (r *Report) Range() date.Range { return r.Request.Range }

// Empty reports whether no instrument contributed to the report.
func (r *Report) Empty() bool { return len(r.daily) == 0 }

// Filter selects daily attributions.
type Filter func(DailyAttribution) bool

// WithCategory selects instruments of the given categories.
func WithCategory(categories ...Category) Filter {
	return func(d DailyAttribution) bool { return slices.Contains(categories, d.Category) }
}

// WithCode selects instruments by code.
func WithCode(codes ...string) Filter {
	return func(d DailyAttribution) bool { return slices.Contains(codes, d.Code) }
}

// WithMarket selects instruments by market.
func WithMarket(markets ...string) Filter {
	return func(d DailyAttribution) bool { return slices.Contains(markets, d.Market) }
}

// Daily returns the per-instrument-day attributions matching every filter.
func (r *Report) Daily(filters ...Filter) []DailyAttribution {
	out := make([]DailyAttribution, 0, len(r.daily))
next:
	for _, d := range r.daily {
		for _, f := range filters {
			if !f(d) {
				continue next
			}
		}
		out = append(out, d)
	}
	return out
}

// Cumulative returns the cumulative series of the instruments matching every filter,
// one row per day of the range.
func (r *Report) Cumulative(filters ...Filter) []CumulativeAttribution {
	return Accumulate(r.Range(), r.Daily(filters...))
}

// Groups rolls up the attributions matching every filter.
func (r *Report) Groups(by GroupKey, filters ...Filter) []Group {
	return Rollup(r.Range(), r.Daily(filters...), by)
}

// Summary returns the period summary of each group.
func (r *Report) Summary(by GroupKey, filters ...Filter) []GroupSummary {
	groups := r.Groups(by, filters...)
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Summary())
	}
	return out
}

// Monthly returns the monthly summary of the instruments matching every filter.
func (r *Report) Monthly(filters ...Filter) []MonthSummary {
	return Monthly(r.Cumulative(filters...))
}

// Holdings returns the positions held at the end of the range.
func (r *Report) Holdings() []Holding { return slices.Clone(r.holdings) }

// Trades returns the trades of the range, primary allocations merged.
func (r *Report) Trades() []TradeRecord { return slices.Clone(r.trades) }
