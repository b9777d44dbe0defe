package bondyield

import (
	"testing"

	"github.com/etnz/bondyield/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// attribute is a test helper running the whole chain for one instrument.
func attribute(t *testing.T, r date.Range, inst Instrument, positions []PositionRecord, flows []CashFlowPeriod, valuations []ValuationRecord, trades []TradeRecord) []DailyAttribution {
	t.Helper()
	tl := BuildTimelines(r, 10, positions)[inst.Code]
	padded := r.Pad(10)
	return Attribute(r, inst, tl,
		NewAccrual(flows, padded),
		NewValuation(valuations, ParValue),
		CapitalGains(trades, tl, CarryForwardThenPar))
}

func flat(code string, r date.Range, p string) []ValuationRecord {
	var out []ValuationRecord
	for on := range r.Days() {
		out = append(out, ValuationRecord{Date: on, Code: code, NetPrice: dec(p)})
	}
	return out
}

// coupon accrues 0.05 per 100 face every day of 2025.
var coupon = []CashFlowPeriod{{Code: "A", Start: day("2025-01-01"), End: day("2026-01-01"), AccrualDays: 365, Interest: dec("18.25")}}

func TestScenarioConstantHolding(t *testing.T) {
	r := days("2025-01-01", "2025-01-10")
	inst := Instrument{Code: "A", Name: "Alpha", Class: 1}
	daily := attribute(t, r, inst, holding("A", r, "1000000", "100", "100"), coupon, flat("A", r.Pad(5), "100"), nil)

	require.Len(t, daily, 10)
	for _, d := range daily {
		assertDecimal(t, "500", d.Interest, d.Date)
		assertDecimal(t, "0", d.CapitalGain, d.Date)
		assertDecimal(t, "0", d.MarkToMarket, d.Date)
		assertDecimal(t, "1000000", d.CapitalOccupied, d.Date)
		assert.True(t, d.Yield().Equal(18.25), "daily yield %v", d.Yield())
		assert.Equal(t, Rate, d.Category)
	}

	cum := Accumulate(r, daily)
	require.Len(t, cum, 10)
	last := cum[9]
	assertDecimal(t, "5000", last.CumInterest)
	assert.Equal(t, 10, last.Workdays)
	assert.True(t, last.Yield.Equal(Percent(0.05/100*365*100)), "yield_cum = %v", last.Yield)
}

func TestScenarioFullSale(t *testing.T) {
	r := days("2025-01-01", "2025-01-10")
	inst := Instrument{Code: "A", Class: 1}
	positions := holding("A", days("2025-01-01", "2025-01-04"), "1000000", "100", "100")
	positions = append(positions, holding("A", days("2025-01-05", "2025-01-10"), "0", "100", "100")...)
	valuations := []ValuationRecord{
		{Date: day("2025-01-01"), Code: "A", NetPrice: dec("100")},
		{Date: day("2025-01-07"), Code: "A", NetPrice: dec("102")}, // moves after the sale
	}
	daily := attribute(t, r, inst, positions, coupon, valuations, []TradeRecord{sell("2025-01-05", "A", "1000000", "1010000")})

	cum := Accumulate(r, daily)
	require.Len(t, cum, 10)
	assertDecimal(t, "10000", cum[4].CapitalGain)
	for _, c := range cum[4:] {
		assert.True(t, c.Held.IsZero())
		assertDecimal(t, "0", c.MarkToMarketDelta, c.Date)
	}
	assertDecimal(t, "10000", cum[9].CumCapitalGains)
	assertDecimal(t, "2000", cum[9].CumInterest)
}

func TestSaleWithoutPositionRowStillAttributed(t *testing.T) {
	r := days("2025-01-01", "2025-01-10")
	positions := holding("A", days("2025-01-01", "2025-01-04"), "1000000", "100", "100")
	daily := attribute(t, r, Instrument{Code: "A"}, positions, nil, nil, []TradeRecord{sell("2025-01-05", "A", "1000000", "1010000")})

	require.Len(t, daily, 5)
	sale := daily[4]
	assert.Equal(t, day("2025-01-05"), sale.Date)
	assert.False(t, sale.Recorded)
	assert.Equal(t, "IB", sale.Market, "market carried from the positions")
	assertDecimal(t, "10000", sale.CapitalGain)
	assertDecimal(t, "0", sale.CapitalOccupied)
}

func TestAttributionProperties(t *testing.T) {
	r := days("2025-01-01", "2025-01-31")
	positions := holding("A", days("2025-01-01", "2025-01-14"), "2000000", "99.5", "100.1")
	positions = append(positions, holding("A", days("2025-01-15", "2025-01-31"), "1500000", "99.5", "100.1")...)
	valuations := []ValuationRecord{
		{Date: day("2025-01-02"), Code: "A", NetPrice: dec("99.8")},
		{Date: day("2025-01-09"), Code: "A", NetPrice: dec("100.3")},
		{Date: day("2025-01-20"), Code: "A", NetPrice: dec("99.1")},
	}
	// the coupon stops mid-month: held days after it accrue nothing
	flows := []CashFlowPeriod{{Code: "A", Start: day("2024-07-25"), End: day("2025-01-25"), AccrualDays: 184, Interest: dec("1.5")}}
	daily := attribute(t, r, Instrument{Code: "A"}, positions, flows, valuations, []TradeRecord{sell("2025-01-15", "A", "500000", "501250")})

	for _, d := range daily {
		assert.True(t, d.Total().Equal(d.Interest.Add(d.CapitalGain).Add(d.MarkToMarket)), "total on %s", d.Date)
		if d.Date.After(day("2025-01-24")) {
			assertDecimal(t, "0", d.Interest, d.Date)
			assert.False(t, d.CapitalOccupied.IsZero(), "capital is still occupied on %s", d.Date)
		}
	}

	cum := Accumulate(r, daily)
	require.Len(t, cum, 31)
	running := dec("0")
	for i, c := range cum {
		running = running.Add(daily[i].Interest)
		assert.True(t, c.CumInterest.Equal(running), "cumulative interest on %s", c.Date)
		assert.True(t, c.CumTotal().Equal(c.CumInterest.Add(c.CumCapitalGains).Add(c.MarkToMarketDelta)))
	}
	// the first day is marked at par, 2025-01-02 at 99.8, against a cost of 99.5
	assertDecimal(t, "10000", daily[0].MarkToMarket)
	assertDecimal(t, "0", cum[0].MarkToMarketDelta)
	assertDecimal(t, "-4000", cum[1].MarkToMarketDelta)
}

func TestMarkToMarketDeltaZeroWhenNotHeld(t *testing.T) {
	r := days("2025-01-01", "2025-01-05")
	positions := holding("A", days("2025-01-01", "2025-01-02"), "1000000", "100", "100")
	positions = append(positions, holding("A", days("2025-01-03", "2025-01-05"), "0", "100", "100")...)
	valuations := []ValuationRecord{
		{Date: day("2025-01-01"), Code: "A", NetPrice: dec("100")},
		{Date: day("2025-01-04"), Code: "A", NetPrice: dec("97")},
	}
	cum := Accumulate(r, attribute(t, r, Instrument{Code: "A"}, positions, nil, valuations, nil))
	for _, c := range cum[2:] {
		assertDecimal(t, "0", c.MarkToMarketDelta, c.Date)
	}
}

func TestAccumulateWithoutCapital(t *testing.T) {
	r := days("2025-01-01", "2025-01-03")
	cum := Accumulate(r, nil)
	require.Len(t, cum, 3)
	for _, c := range cum {
		assert.Equal(t, 0, c.Workdays)
		assert.Equal(t, Percent(0), c.Yield)
	}
	assert.Nil(t, Accumulate(days("2025-01-03", "2025-01-01"), nil))
	assert.Nil(t, Attribute(days("2025-01-03", "2025-01-01"), Instrument{}, nil, nil, nil, nil))
}

func TestMissingCostPrices(t *testing.T) {
	r := days("2025-01-01", "2025-01-01")
	positions := []PositionRecord{{Date: day("2025-01-01"), Code: "A", Market: "IB", Held: dec("1000000")}}
	daily := attribute(t, r, Instrument{Code: "A"}, positions, coupon, nil, nil)
	require.Len(t, daily, 1)
	assertDecimal(t, "500", daily[0].Interest)
	assertDecimal(t, "0", daily[0].CapitalOccupied)
	assertDecimal(t, "0", daily[0].MarkToMarket)
	assert.Equal(t, Percent(0), daily[0].Yield())
}
