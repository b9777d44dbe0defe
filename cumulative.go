package bondyield

import (
	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// CumulativeAttribution is the attribution accumulated from the start of a range
// up to and including Date.
type CumulativeAttribution struct {
	Date date.Date
	// Components are the figures of the day alone, summed over the series.
	Components

	CumInterest        decimal.Decimal
	CumCapitalGains    decimal.Decimal
	MarkToMarketDelta  decimal.Decimal // since the first recorded day
	CumCapitalOccupied decimal.Decimal
	// Workdays is the number of days so far with capital occupied.
	Workdays int
	// Yield is the annualized cumulative yield.
	Yield Percent
}

// CumTotal returns the cumulative profit.
func (c CumulativeAttribution) CumTotal() decimal.Decimal {
	return c.CumInterest.Add(c.CumCapitalGains).Add(c.MarkToMarketDelta)
}

// Accumulate computes the cumulative series of daily over every day of r.
//
// daily may hold several instruments: their components are summed per day before
// accumulation, which is the only correct way to compute the yield of a group.
// Days with no row count as zero.
func Accumulate(r date.Range, daily []DailyAttribution) []CumulativeAttribution {
	if !r.Valid() {
		return nil
	}
	byDay := make(map[date.Date]Components, r.Len())
	for _, d := range daily {
		if r.Contains(d.Date) {
			byDay[d.Date] = byDay[d.Date].Add(d.Components)
		}
	}

	out := make([]CumulativeAttribution, 0, r.Len())
	var (
		cum      CumulativeAttribution
		anchor   decimal.Decimal
		anchored bool
	)
	for day := range r.Days() {
		c := byDay[day]
		if c.Recorded && !anchored {
			anchor, anchored = c.MarkToMarket, true
		}
		cum.Date = day
		cum.Components = c
		cum.CumInterest = cum.CumInterest.Add(c.Interest)
		cum.CumCapitalGains = cum.CumCapitalGains.Add(c.CapitalGain)
		cum.CumCapitalOccupied = cum.CumCapitalOccupied.Add(c.CapitalOccupied)
		if !c.CapitalOccupied.IsZero() {
			cum.Workdays++
		}
		cum.MarkToMarketDelta = decimal.Zero
		if anchored && !c.Held.IsZero() {
			cum.MarkToMarketDelta = c.MarkToMarket.Sub(anchor)
		}
		cum.Yield = cumulativeYield(cum)
		out = append(out, cum)
	}
	return out
}

// cumulativeYield annualizes the interest over the workdays and relates the
// total profit to the average capital occupied.
func cumulativeYield(c CumulativeAttribution) Percent {
	if c.Workdays == 0 {
		return 0
	}
	wd := decimal.NewFromInt(int64(c.Workdays))
	profit := c.CumInterest.Mul(daysPerYear).Div(wd).Add(c.CumCapitalGains).Add(c.MarkToMarketDelta)
	return ratio(profit, c.CumCapitalOccupied.Div(wd))
}
