package bondyield_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/etnz/bondyield"
	"github.com/etnz/bondyield/date"
	"github.com/etnz/bondyield/store/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func on(s string) date.Date { return date.MustParse(s) }

func held(code, market string, r date.Range, amount, cost string) []bondyield.PositionRecord {
	var out []bondyield.PositionRecord
	for day := range r.Days() {
		out = append(out, bondyield.PositionRecord{
			Date: day, Code: code, Market: market, CarryType: bondyield.CarryOwned, Held: d(amount),
			CostNetPrice: decimal.NewNullDecimal(d(cost)), CostFullPrice: decimal.NewNullDecimal(d(cost)),
		})
	}
	return out
}

// desk is a small book: a rate bond, a credit bond and a certificate of deposit.
func desk() *memory.Store {
	jan := date.NewRange(on("2024-12-01"), on("2025-01-31"))
	return memory.NewStore().
		AddInstruments(
			bondyield.Instrument{Code: "250001", Name: "25 Treasury 01", Market: "IB", Class: 0, Issuer: "MoF"},
			bondyield.Instrument{Code: "2380123", Name: "23 Grid MTN", Market: "IB", Class: 15, Issuer: "State Grid"},
			bondyield.Instrument{Code: "112501", Name: "25 CD 01", Market: "IB", Class: bondyield.CDClass, Issuer: "ABC"},
		).
		AddPositions(held("250001", "IB", jan, "1000000", "100")...).
		AddPositions(held("2380123", "IB", date.NewRange(on("2024-12-01"), on("2025-01-04")), "1000000", "100")...).
		AddPositions(held("112501", "IB", jan, "5000000", "99")...).
		AddPositions(bondyield.PositionRecord{Date: on("2025-01-05"), Code: "250001", Market: "IB", Portfolio: "custody",
			CarryType: bondyield.CarryOwned, Held: d("9000000"), CostNetPrice: decimal.NewNullDecimal(d("100"))}).
		AddCashFlows(
			bondyield.CashFlowPeriod{Code: "250001", Start: on("2024-07-01"), End: on("2025-07-01"), AccrualDays: 365, Interest: d("18.25")},
			bondyield.CashFlowPeriod{Code: "2380123", Start: on("2024-07-01"), End: on("2025-07-01"), AccrualDays: 365, Interest: d("36.5")},
		).
		AddValuations(
			bondyield.ValuationRecord{Date: on("2024-11-15"), Code: "250001", NetPrice: d("100")},
			bondyield.ValuationRecord{Date: on("2025-01-06"), Code: "250001", NetPrice: d("100.5")},
		).
		AddTrades(
			bondyield.TradeRecord{Date: on("2025-01-05"), Code: "2380123", Market: "IB", Venue: bondyield.Interbank,
				Direction: bondyield.Sell, Face: d("1000000"), NetPrice: d("101"), TradeAmount: d("1010000")},
			bondyield.TradeRecord{Date: on("2025-01-02"), Code: "112501", Market: "IB", Venue: bondyield.Primary,
				Direction: bondyield.Buy, Face: d("5000000"), NetPrice: d("99")},
		)
}

func run(t *testing.T, src bondyield.Source, req bondyield.Request, options ...bondyield.Option) *bondyield.Report {
	t.Helper()
	rep, err := bondyield.NewEngine(src, options...).Run(context.Background(), req)
	require.NoError(t, err)
	return rep
}

func TestEngineScenarioConstantHolding(t *testing.T) {
	r := date.NewRange(on("2025-01-01"), on("2025-01-05"))
	opts := bondyield.DefaultOptions()
	opts.ExcludedPortfolios = []string{"custody"}
	rep := run(t, desk(), bondyield.Request{Range: r, Codes: []string{"250001"}}, bondyield.WithOptions(opts))

	daily := rep.Daily()
	require.Len(t, daily, 5)
	for _, row := range daily {
		assert.True(t, row.Interest.Equal(d("500")), "interest %s on %s", row.Interest, row.Date)
		assert.True(t, row.MarkToMarket.IsZero(), "carried valuation of 100 on %s", row.Date)
		assert.True(t, row.Held.Equal(d("1000000")), "custodial portfolios are excluded")
	}
	cum := rep.Cumulative()
	require.Len(t, cum, 5)
	assert.True(t, cum[4].Yield.Equal(18.25), "yield_cum = %v", cum[4].Yield)
}

func TestEngineScenarioFullSale(t *testing.T) {
	r := date.NewRange(on("2025-01-01"), on("2025-01-10"))
	rep := run(t, desk(), bondyield.Request{Range: r, Scope: bondyield.ScopeBonds}, bondyield.WithLogger(zerolog.Nop()))

	credit := rep.Cumulative(bondyield.WithCategory(bondyield.Credit))
	require.Len(t, credit, 10)
	assert.True(t, credit[4].CapitalGain.Equal(d("10000")), "gain %s", credit[4].CapitalGain)
	for _, c := range credit[4:] {
		assert.True(t, c.MarkToMarketDelta.IsZero(), "not held on %s", c.Date)
	}
	assert.True(t, credit[9].CumInterest.Equal(d("4000")), "4 days of 1000")

	for _, h := range rep.Holdings() {
		assert.NotEqual(t, "2380123", h.Instrument.Code, "sold")
		assert.NotEqual(t, bondyield.CD, h.Instrument.Category(), "out of scope")
	}
}

func TestEngineScopeOfSaleOnFirstDay(t *testing.T) {
	// held until 2025-01-04, sold 2025-01-05: the range starts on the sale
	r := date.NewRange(on("2025-01-05"), on("2025-01-10"))
	rep := run(t, desk(), bondyield.Request{Range: r, Codes: []string{"2380123"}})

	daily := rep.Daily()
	require.Len(t, daily, 1)
	assert.True(t, daily[0].CapitalGain.Equal(d("10000")))
	assert.Equal(t, "State Grid", daily[0].Issuer)
}

func TestReportOwnsItsRequest(t *testing.T) {
	codes := []string{"250001"}
	rep := run(t, desk(), bondyield.Request{Range: date.NewRange(on("2025-01-01"), on("2025-01-05")), Codes: codes})
	codes[0] = "112501"
	assert.Equal(t, []string{"250001"}, rep.Request.Codes)
}

func TestEngineInvalidRange(t *testing.T) {
	r := date.NewRange(on("2025-01-10"), on("2025-01-01"))
	rep := run(t, failingSource{}, bondyield.Request{Range: r})

	assert.True(t, rep.Empty())
	assert.Empty(t, rep.Daily())
	assert.Empty(t, rep.Cumulative())
	assert.Empty(t, rep.Summary(bondyield.ByMarket))
	assert.Empty(t, rep.Monthly())
	assert.Empty(t, rep.Holdings())
	assert.Empty(t, rep.Trades())
}

func TestEngineSourceError(t *testing.T) {
	_, err := bondyield.NewEngine(failingSource{}).Run(context.Background(), bondyield.Request{
		Range: date.NewRange(on("2025-01-01"), on("2025-01-10")),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnavailable)
}

func TestEngineParallelMatchesSequential(t *testing.T) {
	r := date.NewRange(on("2025-01-01"), on("2025-01-31"))
	req := bondyield.Request{Range: r}
	opts := bondyield.DefaultOptions()
	seq := run(t, desk(), req, bondyield.WithOptions(opts))
	opts.Workers = 4
	par := run(t, desk(), req, bondyield.WithOptions(opts))

	assert.Equal(t, seq.Daily(), par.Daily())
	assert.Equal(t, seq.Summary(bondyield.ByClass), par.Summary(bondyield.ByClass))
}

func TestEngineMissingReferenceData(t *testing.T) {
	var logs bytes.Buffer
	src := memory.NewStore().AddPositions(held("X1", "SH", date.NewRange(on("2025-01-01"), on("2025-01-03")), "100", "100")...)
	src.AddPositions(held("NOMKT", "", date.NewRange(on("2025-01-01"), on("2025-01-03")), "100", "100")...)
	rep := run(t, src, bondyield.Request{Range: date.NewRange(on("2025-01-01"), on("2025-01-03"))},
		bondyield.WithLogger(zerolog.New(&logs)))

	assert.Equal(t, []string{"X1"}, rep.Catalog.Codes(), "instruments without market are skipped")
	inst, ok := rep.Catalog.Get("X1")
	require.True(t, ok)
	assert.Equal(t, "SH", inst.Market)
	assert.Contains(t, logs.String(), "no reference data")
}

func TestEngineTradesAndMonthly(t *testing.T) {
	r := date.NewRange(on("2025-01-01"), on("2025-01-31"))
	rep := run(t, desk(), bondyield.Request{Range: r, Scope: bondyield.ScopeCDs})

	trades := rep.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, bondyield.Primary, trades[0].Venue)
	assert.True(t, trades[0].SettleAmount.Equal(d("4950000")))

	months := rep.Monthly()
	require.Len(t, months, 1)
	assert.Equal(t, bondyield.Percent(0), months[0].Rate, "a CD without cash flow schedule earns nothing")

	holdings := rep.Holdings()
	require.Len(t, holdings, 1)
	assert.Equal(t, "112501", holdings[0].Instrument.Code)
}

func TestEngineLogsHeldDaysWithoutCoupon(t *testing.T) {
	var logs bytes.Buffer
	r := date.NewRange(on("2025-01-01"), on("2025-01-05"))
	rep := run(t, desk(), bondyield.Request{Range: r}, bondyield.WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))

	require.NotEmpty(t, rep.Daily(bondyield.WithCategory(bondyield.CD)))
	assert.Contains(t, logs.String(), `"code":"112501","days":5,"message":"held without coupon period`)
	assert.NotContains(t, logs.String(), `"code":"250001","days"`)
}

var errUnavailable = errors.New("warehouse unavailable")

// failingSource fails every call.
type failingSource struct{}

func (failingSource) Instruments(context.Context, []string) ([]bondyield.Instrument, error) {
	return nil, errUnavailable
}
func (failingSource) Positions(context.Context, bondyield.Query) ([]bondyield.PositionRecord, error) {
	return nil, errUnavailable
}
func (failingSource) CashFlows(context.Context, bondyield.Query) ([]bondyield.CashFlowPeriod, error) {
	return nil, errUnavailable
}
func (failingSource) Valuations(context.Context, bondyield.Query) ([]bondyield.ValuationRecord, error) {
	return nil, errUnavailable
}
func (failingSource) Trades(context.Context, bondyield.Query) ([]bondyield.TradeRecord, error) {
	return nil, errUnavailable
}
