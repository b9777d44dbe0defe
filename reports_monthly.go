package bondyield

import (
	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// MonthSummary is the attribution of one calendar month, excluding mark-to-market.
type MonthSummary struct {
	// Month is the part of the month covered by the series.
	Month           date.Range
	AvgHeld         decimal.Decimal
	Interest        decimal.Decimal
	CapitalGains    decimal.Decimal
	CapitalOccupied decimal.Decimal // summed over the days
	// Rate annualizes the interest, not the capital gains.
	Rate Percent
}

// Monthly splits a cumulative series by calendar month.
func Monthly(series []CumulativeAttribution) []MonthSummary {
	var out []MonthSummary
	var cur *MonthSummary
	var held decimal.Decimal
	flush := func() {
		if cur == nil {
			return
		}
		days := decimal.NewFromInt(int64(cur.Month.Len()))
		cur.AvgHeld = held.Div(days)
		if income := cur.Interest.Add(cur.CapitalGains); !income.IsZero() {
			cur.Rate = ratio(cur.Interest.Mul(daysPerYear).Add(cur.CapitalGains.Mul(days)), cur.CapitalOccupied)
		}
		out = append(out, *cur)
	}
	for _, c := range series {
		if cur == nil || c.Date.StartOf(date.Monthly) != cur.Month.From.StartOf(date.Monthly) {
			flush()
			cur = &MonthSummary{Month: date.NewRange(c.Date, c.Date)}
			held = decimal.Zero
		}
		cur.Month.To = c.Date
		held = held.Add(c.Held)
		cur.Interest = cur.Interest.Add(c.Interest)
		cur.CapitalGains = cur.CapitalGains.Add(c.CapitalGain)
		cur.CapitalOccupied = cur.CapitalOccupied.Add(c.CapitalOccupied)
	}
	flush()
	return out
}
