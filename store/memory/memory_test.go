package memory

import (
	"context"
	"testing"

	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionsFilters(t *testing.T) {
	s := NewStore().AddPositions(
		bondyield.PositionRecord{Date: date.MustParse("2025-01-01"), Code: "A", CarryType: bondyield.CarryOwned, Held: decimal.NewFromInt(1)},
		bondyield.PositionRecord{Date: date.MustParse("2025-01-02"), Code: "A", CarryType: 1, Held: decimal.NewFromInt(2)},
		bondyield.PositionRecord{Date: date.MustParse("2025-01-02"), Code: "A", CarryType: bondyield.CarryOwned, Portfolio: "custody", Held: decimal.NewFromInt(3)},
		bondyield.PositionRecord{Date: date.MustParse("2025-01-02"), Code: "B", CarryType: bondyield.CarryOwned, Held: decimal.NewFromInt(4)},
		bondyield.PositionRecord{Date: date.MustParse("2025-02-01"), Code: "A", CarryType: bondyield.CarryOwned, Held: decimal.NewFromInt(5)},
	)
	got, err := s.Positions(context.Background(), bondyield.Query{
		Range:              date.NewRange(date.MustParse("2025-01-01"), date.MustParse("2025-01-31")),
		Codes:              []string{"A"},
		CarryType:          bondyield.CarryOwned,
		ExcludedPortfolios: []string{"custody"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Held.Equal(decimal.NewFromInt(1)))
}

func TestCashFlowsOverlap(t *testing.T) {
	s := NewStore().AddCashFlows(
		bondyield.CashFlowPeriod{Code: "A", Start: date.MustParse("2024-07-01"), End: date.MustParse("2025-01-01")},
		bondyield.CashFlowPeriod{Code: "A", Start: date.MustParse("2025-01-01"), End: date.MustParse("2025-07-01")},
		bondyield.CashFlowPeriod{Code: "A", Start: date.MustParse("2025-07-01"), End: date.MustParse("2026-01-01")},
	)
	got, err := s.CashFlows(context.Background(), bondyield.Query{
		Range: date.NewRange(date.MustParse("2025-03-01"), date.MustParse("2025-03-31")),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, date.MustParse("2025-01-01"), got[0].Start)
}

func TestInstrumentsSkipsUnknown(t *testing.T) {
	s := NewStore().AddInstruments(bondyield.Instrument{Code: "A", Name: "Alpha"})
	got, err := s.Instruments(context.Background(), []string{"A", "Z"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alpha", got[0].Name)
}
