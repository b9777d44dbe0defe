package bondyield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sell(on, code, face, amount string) TradeRecord {
	return TradeRecord{Date: day(on), Code: code, Market: "IB", Venue: Interbank, Direction: Sell, Face: dec(face), TradeAmount: dec(amount)}
}

func TestCapitalGainsFullSale(t *testing.T) {
	r := days("2025-01-01", "2025-01-10")
	tl := BuildTimelines(r, 10, holding("A", days("2025-01-01", "2025-01-04"), "1000000", "100", "100"))["A"]

	gains := CapitalGains([]TradeRecord{sell("2025-01-05", "A", "1000000", "1010000")}, tl, CarryForwardThenPar)
	require.Len(t, gains, 1)
	g := gains[0]
	assertDecimal(t, "101", g.WeightedPrice)
	assertDecimal(t, "100", g.PriorCostNetPrice)
	assertDecimal(t, "10000", g.Gain)
	assert.False(t, g.Substituted)
}

func TestCapitalGainsWeightsSalesOfTheDay(t *testing.T) {
	tl := BuildTimelines(days("2025-01-01", "2025-01-10"), 10, holding("A", days("2025-01-01", "2025-01-10"), "2000000", "100", "100"))["A"]
	trades := []TradeRecord{
		sell("2025-01-05", "A", "600000", "606000"),
		sell("2025-01-05", "A", "400000", "402000"),
		{Date: day("2025-01-05"), Code: "A", Venue: Interbank, Direction: Buy, Face: dec("1000000"), TradeAmount: dec("990000")},
		{Date: day("2025-01-06"), Code: "A", Venue: Primary, Direction: Sell, Face: dec("1000000"), TradeAmount: dec("990000")},
		sell("2025-01-06", "B", "1000000", "1020000"),
		sell("2025-01-07", "A", "0", "0"),
	}
	gains := CapitalGains(trades, tl, CarryForwardThenPar)
	require.Len(t, gains, 1, "only secondary sells of the instrument realize a gain")
	assertDecimal(t, "100.8", gains[0].WeightedPrice)
	assertDecimal(t, "1000000", gains[0].Face)
	assertDecimal(t, "8000", gains[0].Gain)
}

func TestCapitalGainsFallbackPolicies(t *testing.T) {
	r := days("2025-01-01", "2025-01-10")
	records := holding("A", days("2025-01-01", "2025-01-03"), "1000000", "99", "99")
	// the day before the sale has a position but lost its cost price
	records = append(records, PositionRecord{Date: day("2025-01-04"), Code: "A", Market: "IB", Held: dec("1000000")})
	tl := BuildTimelines(r, 10, records)["A"]
	trades := []TradeRecord{sell("2025-01-05", "A", "1000000", "1010000")}

	testCases := []struct {
		policy    CostPriceFallbackPolicy
		wantPrior string
		wantGain  string
	}{
		{CarryForwardThenPar, "99", "20000"},
		{ParOnly, "100", "10000"},
	}
	for _, tc := range testCases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			gains := CapitalGains(trades, tl, tc.policy)
			require.Len(t, gains, 1)
			assert.True(t, gains[0].Substituted)
			assertDecimal(t, tc.wantPrior, gains[0].PriorCostNetPrice)
			assertDecimal(t, tc.wantGain, gains[0].Gain)
		})
	}
}

func TestCapitalGainsNoKnownCostDefaultsToPar(t *testing.T) {
	r := days("2025-01-01", "2025-01-10")
	tl := BuildTimelines(r, 10, []PositionRecord{{Date: day("2025-01-02"), Code: "A", Held: dec("1000000")}})["A"]
	for _, policy := range []CostPriceFallbackPolicy{CarryForwardThenPar, ParOnly} {
		gains := CapitalGains([]TradeRecord{sell("2025-01-05", "A", "1000000", "995000")}, tl, policy)
		require.Len(t, gains, 1)
		assertDecimal(t, "100", gains[0].PriorCostNetPrice, policy.String())
		assertDecimal(t, "-5000", gains[0].Gain, policy.String())
	}
}

func TestParseCostPriceFallbackPolicy(t *testing.T) {
	for _, p := range []CostPriceFallbackPolicy{CarryForwardThenPar, ParOnly} {
		got, err := ParseCostPriceFallbackPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParseCostPriceFallbackPolicy("guess")
	assert.Error(t, err)
}
