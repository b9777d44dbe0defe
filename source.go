package bondyield

import (
	"context"
	"slices"

	"github.com/etnz/bondyield/date"
)

// Query selects records from a Source.
type Query struct {
	Range date.Range
	// Codes restricts the instruments, empty means every instrument.
	Codes []string
	// CarryType restricts positions, 0 means any.
	CarryType CarryType
	// ExcludedPortfolios are dropped from positions and trades.
	ExcludedPortfolios []string
}

// HasCode reports whether the query selects the instrument code.
func (q Query) HasCode(code string) bool {
	return len(q.Codes) == 0 || slices.Contains(q.Codes, code)
}

// Excludes reports whether the query drops the portfolio.
func (q Query) Excludes(portfolio string) bool {
	return portfolio != "" && slices.Contains(q.ExcludedPortfolios, portfolio)
}

// Source retrieves the raw records the attribution is computed from.
//
// Implementations return records for the whole query range and leave gap filling
// to the engine.
type Source interface {
	// Instruments returns the reference data of the given codes. Unknown codes are skipped.
	Instruments(ctx context.Context, codes []string) ([]Instrument, error)
	// Positions returns the position rows dated in the query range.
	Positions(ctx context.Context, q Query) ([]PositionRecord, error)
	// CashFlows returns the coupon periods overlapping the query range.
	CashFlows(ctx context.Context, q Query) ([]CashFlowPeriod, error)
	// Valuations returns the valuations dated in the query range.
	Valuations(ctx context.Context, q Query) ([]ValuationRecord, error)
	// Trades returns primary and secondary trades dated in the query range.
	Trades(ctx context.Context, q Query) ([]TradeRecord, error)
}
