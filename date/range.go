package date

import (
	"fmt"
	"iter"
)

// Range represents an inclusive range of dates.
//
// A Range whose From is after To is invalid: it contains no day, and every
// computation over it yields an empty result.
type Range struct{ From, To Date }

// NewRange returns the range [from, to]. Unlike a period range, from and to are
// not swapped, so that an inverted range stays invalid.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Valid reports whether the range contains at least one day.
func (r Range) Valid() bool { return !r.From.After(r.To) }

// Len returns the number of days in the range, 0 for an invalid range.
func (r Range) Len() int {
	if !r.Valid() {
		return 0
	}
	return r.To.Sub(r.From) + 1
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Pad returns the range widened by n days on both sides.
func (r Range) Pad(n int) Range { return Range{From: r.From.Add(-n), To: r.To.Add(n)} }

// Intersect returns the days common to r and s, possibly invalid.
func (r Range) Intersect(s Range) Range {
	out := r
	if s.From.After(out.From) {
		out.From = s.From
	}
	if s.To.Before(out.To) {
		out.To = s.To
	}
	return out
}

// Days returns an iterator that yields each date within the range, inclusive.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Periods yields the parts of r that fall in each successive period p.
// The first and last parts are clipped to r.
func (r Range) Periods(p Period) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		for current := r.From; !current.After(r.To); {
			part := p.Range(current).Intersect(r)
			if !yield(part) {
				return
			}
			current = part.To.Add(1)
		}
	}
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
