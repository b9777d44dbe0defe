package bondyield

import (
	"slices"

	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// Group is the attribution of a set of instruments sharing a GroupKey value.
type Group struct {
	Key   string
	Label string
	// Daily are the instrument rows of the group.
	Daily []DailyAttribution
	// Cumulative is computed on the daily components summed across the group.
	Cumulative []CumulativeAttribution
}

// Rollup splits daily by key and computes each group's cumulative series over r.
// Groups are sorted by key.
func Rollup(r date.Range, daily []DailyAttribution, by GroupKey) []Group {
	if !r.Valid() {
		return nil
	}
	index := make(map[string]int)
	var groups []Group
	for _, d := range daily {
		key, label := by.Of(d)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Label: label})
		}
		groups[i].Daily = append(groups[i].Daily, d)
	}
	for i := range groups {
		groups[i].Cumulative = Accumulate(r, groups[i].Daily)
	}
	slices.SortFunc(groups, func(a, b Group) int {
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return 0
	})
	return groups
}

// GroupSummary is the period summary of a group.
type GroupSummary struct {
	Key   string
	Label string
	// AvgHeld is the sum of daily held amounts over the days of the range.
	AvgHeld decimal.Decimal
	// AvgCapitalOccupied is the cumulative capital occupied over the days of the range.
	AvgCapitalOccupied decimal.Decimal
	Interest           decimal.Decimal
	CapitalGains       decimal.Decimal
	MarkToMarket       decimal.Decimal
	Yield              Percent
}

// Total returns the profit of the period.
func (s GroupSummary) Total() decimal.Decimal {
	return s.Interest.Add(s.CapitalGains).Add(s.MarkToMarket)
}

// Summary returns the figures of g at the end of its cumulative series.
func (g Group) Summary() GroupSummary {
	s := GroupSummary{Key: g.Key, Label: g.Label}
	if len(g.Cumulative) == 0 {
		return s
	}
	days := decimal.NewFromInt(int64(len(g.Cumulative)))
	var held decimal.Decimal
	for _, c := range g.Cumulative {
		held = held.Add(c.Held)
	}
	last := g.Cumulative[len(g.Cumulative)-1]
	s.AvgHeld = held.Div(days)
	s.AvgCapitalOccupied = last.CumCapitalOccupied.Div(days)
	s.Interest = last.CumInterest
	s.CapitalGains = last.CumCapitalGains
	s.MarkToMarket = last.MarkToMarketDelta
	s.Yield = last.Yield
	return s
}
