package bondyield

import (
	"slices"

	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// Position is the consolidated holding of one instrument at the end of one day.
type Position struct {
	Date          date.Date
	Name          string
	Market        string
	Held          decimal.Decimal
	CostNetPrice  decimal.NullDecimal
	CostFullPrice decimal.NullDecimal
	// Recorded is false for days with no row in the position feed.
	Recorded bool
}

// Timeline is the continuous daily position series of one instrument.
type Timeline struct {
	Code  string
	Range date.Range
	days  []Position // one per day of Range
}

func newTimeline(code string, r date.Range) *Timeline {
	tl := &Timeline{Code: code, Range: r, days: make([]Position, r.Len())}
	i := 0
	for day := range r.Days() {
		tl.days[i] = Position{Date: day}
		i++
	}
	return tl
}

// At returns the position on day. Days outside the timeline are not held.
func (tl *Timeline) At(day date.Date) Position {
	if tl == nil || !tl.Range.Contains(day) {
		return Position{Date: day}
	}
	return tl.days[day.Sub(tl.Range.From)]
}

// Recorded reports whether the instrument has a position row on some day of r.
func (tl *Timeline) Recorded(r date.Range) bool {
	if tl == nil {
		return false
	}
	for day := range r.Intersect(tl.Range).Days() {
		if tl.At(day).Recorded {
			return true
		}
	}
	return false
}

// Market returns the market of the latest recorded position.
func (tl *Timeline) Market() string {
	if tl == nil {
		return ""
	}
	for _, p := range slices.Backward(tl.days) {
		if p.Recorded && p.Market != "" {
			return p.Market
		}
	}
	return ""
}

// Name returns the name of the latest recorded position.
func (tl *Timeline) Name() string {
	if tl == nil {
		return ""
	}
	for _, p := range slices.Backward(tl.days) {
		if p.Recorded && p.Name != "" {
			return p.Name
		}
	}
	return ""
}

// CostNetPriceAsOf returns the most recent known cost net price on or before day.
func (tl *Timeline) CostNetPriceAsOf(day date.Date) (decimal.Decimal, bool) {
	if tl == nil || day.Before(tl.Range.From) {
		return decimal.Decimal{}, false
	}
	if day.After(tl.Range.To) {
		day = tl.Range.To
	}
	for i := day.Sub(tl.Range.From); i >= 0; i-- {
		if p := tl.days[i]; p.CostNetPrice.Valid {
			return p.CostNetPrice.Decimal, true
		}
	}
	return decimal.Decimal{}, false
}

// positionMerge consolidates the rows of one instrument on one day, one row per portfolio.
type positionMerge struct {
	rows                   int
	held                   decimal.Decimal
	netWeighted, netHeld   decimal.Decimal
	fullWeighted, fullHeld decimal.Decimal
	lastNet, lastFull      decimal.NullDecimal
	name, market           string
}

func (m *positionMerge) add(r PositionRecord) {
	m.rows++
	m.held = m.held.Add(r.Held)
	if r.CostNetPrice.Valid {
		m.netWeighted = m.netWeighted.Add(r.CostNetPrice.Decimal.Mul(r.Held))
		m.netHeld = m.netHeld.Add(r.Held)
		m.lastNet = r.CostNetPrice
	}
	if r.CostFullPrice.Valid {
		m.fullWeighted = m.fullWeighted.Add(r.CostFullPrice.Decimal.Mul(r.Held))
		m.fullHeld = m.fullHeld.Add(r.Held)
		m.lastFull = r.CostFullPrice
	}
	if r.Name != "" {
		m.name = r.Name
	}
	if r.Market != "" {
		m.market = r.Market
	}
}

// weighted returns the held-weighted price, or the last seen price when weights cancel out.
func weighted(rows int, sum, weight decimal.Decimal, last decimal.NullDecimal) decimal.NullDecimal {
	if rows <= 1 || weight.IsZero() || !last.Valid {
		return last
	}
	return decimal.NewNullDecimal(sum.Div(weight))
}

func (m *positionMerge) position(day date.Date) Position {
	return Position{
		Date:          day,
		Name:          m.name,
		Market:        m.market,
		Held:          m.held,
		CostNetPrice:  weighted(m.rows, m.netWeighted, m.netHeld, m.lastNet),
		CostFullPrice: weighted(m.rows, m.fullWeighted, m.fullHeld, m.lastFull),
		Recorded:      true,
	}
}

// BuildTimelines builds the daily position series of every instrument present in
// records, over r padded by pad days on both sides.
//
// Records outside the padded range are ignored. The result is empty for an invalid range.
func BuildTimelines(r date.Range, pad int, records []PositionRecord) map[string]*Timeline {
	timelines := make(map[string]*Timeline)
	if !r.Valid() {
		return timelines
	}
	padded := r.Pad(pad)

	type key struct {
		code string
		day  date.Date
	}
	merges := make(map[key]*positionMerge)
	for _, rec := range records {
		if !padded.Contains(rec.Date) {
			continue
		}
		k := key{rec.Code, rec.Date}
		m, ok := merges[k]
		if !ok {
			m = new(positionMerge)
			merges[k] = m
		}
		m.add(rec)
	}
	for k, m := range merges {
		tl, ok := timelines[k.code]
		if !ok {
			tl = newTimeline(k.code, padded)
			timelines[k.code] = tl
		}
		tl.days[k.day.Sub(padded.From)] = m.position(k.day)
	}
	return timelines
}

// HeldIn returns the sorted codes of the timelines with a position recorded in r.
func HeldIn(r date.Range, timelines map[string]*Timeline) []string {
	var codes []string
	for code, tl := range timelines {
		if tl.Recorded(r) {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	return codes
}
