package bondyield

import (
	"cmp"
	"slices"

	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// MergeAllocations consolidates primary allocations per day, instrument, market
// and direction. Allocations carry only a face amount and a net price, so the
// other amounts are derived: settle and trade amounts are net × face / 100, the full
// price is the net price and no interest is accrued. Secondary trades are returned unchanged.
func MergeAllocations(trades []TradeRecord) []TradeRecord {
	type key struct {
		day       date.Date
		code      string
		market    string
		direction Direction
	}
	index := make(map[key]int)
	var out []TradeRecord
	for _, t := range trades {
		if t.Venue != Primary {
			out = append(out, t)
			continue
		}
		k := key{t.Date, t.Code, t.Market, t.Direction}
		if i, ok := index[k]; ok {
			out[i].Face = out[i].Face.Add(t.Face)
			continue
		}
		index[k] = len(out)
		t.Portfolio = ""
		out = append(out, t)
	}
	for i, t := range out {
		if t.Venue != Primary {
			continue
		}
		out[i].SettleAmount = t.NetPrice.Mul(t.Face).Div(hundred)
		out[i].TradeAmount = out[i].SettleAmount
		out[i].FullPrice = t.NetPrice
		out[i].AccruedInterest = decimal.Zero
	}
	SortTrades(out)
	return out
}

// SortTrades sorts trades by date, venue, instrument and direction.
func SortTrades(trades []TradeRecord) {
	slices.SortStableFunc(trades, func(a, b TradeRecord) int {
		return cmp.Or(
			a.Date.Compare(b.Date),
			cmp.Compare(a.Venue, b.Venue),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Direction, b.Direction),
		)
	})
}

// Holding is an instrument held at the end of a day.
type Holding struct {
	Instrument Instrument
	Position   Position
}

// holdingsOn returns the non-zero recorded positions on day, sorted by code.
func holdingsOn(day date.Date, catalog *Catalog, timelines map[string]*Timeline) []Holding {
	var out []Holding
	for _, code := range catalog.Codes() {
		p := timelines[code].At(day)
		if !p.Recorded || p.Held.IsZero() {
			continue
		}
		inst, _ := catalog.Get(code)
		out = append(out, Holding{Instrument: inst, Position: p})
	}
	return out
}
