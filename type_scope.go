package bondyield

import (
	"fmt"
	"slices"
	"strings"
)

// Class codes of the instrument reference feed.
const (
	// CDClass is the class code of negotiable certificates of deposit.
	CDClass = 26
	// UnknownClass is used for instruments missing from the reference feed.
	UnknownClass = -1
)

// rateClasses are government, central bank and policy bank bonds.
var rateClasses = []int{0, 1, 6, 11}

// Category is the coarse classification of an instrument.
type Category int

const (
	Rate Category = iota
	Credit
	CD
)

// CategoryOf returns the category of an instrument class code.
func CategoryOf(class int) Category {
	switch {
	case class == CDClass:
		return CD
	case slices.Contains(rateClasses, class):
		return Rate
	default:
		return Credit
	}
}

func (c Category) String() string {
	switch c {
	case Rate:
		return "rate"
	case Credit:
		return "credit"
	case CD:
		return "cd"
	default:
		return "unknown"
	}
}

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "rate":
		return Rate, nil
	case "credit":
		return Credit, nil
	case "cd":
		return CD, nil
	}
	return 0, fmt.Errorf("unknown category: %q", s)
}

// Scope selects the disjoint subsets of instruments a report is computed for.
type Scope int

const (
	ScopeAll Scope = iota
	// ScopeBonds excludes certificates of deposit.
	ScopeBonds
	// ScopeCDs keeps only certificates of deposit.
	ScopeCDs
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeBonds:
		return "bonds"
	case ScopeCDs:
		return "cds"
	default:
		return "unknown"
	}
}

// Includes reports whether an instrument of category c belongs to the scope.
func (s Scope) Includes(c Category) bool {
	switch s {
	case ScopeBonds:
		return c != CD
	case ScopeCDs:
		return c == CD
	default:
		return true
	}
}

func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "all", "":
		return ScopeAll, nil
	case "bonds", "bond":
		return ScopeBonds, nil
	case "cds", "cd":
		return ScopeCDs, nil
	}
	return 0, fmt.Errorf("unknown scope: %q", s)
}

// GroupKey is the dimension along which daily attributions are rolled up.
type GroupKey int

const (
	ByInstrument GroupKey = iota
	ByMarket
	ByIssuer
	ByClass
	// ByTotal puts every instrument in a single group.
	ByTotal
)

func (k GroupKey) String() string {
	switch k {
	case ByInstrument:
		return "instrument"
	case ByMarket:
		return "market"
	case ByIssuer:
		return "issuer"
	case ByClass:
		return "class"
	case ByTotal:
		return "total"
	default:
		return "unknown"
	}
}

// Of returns the group key and display label of a daily attribution.
func (k GroupKey) Of(d DailyAttribution) (key, label string) {
	switch k {
	case ByInstrument:
		return d.Code, d.Name
	case ByMarket:
		return d.Market, d.Market
	case ByIssuer:
		return d.Issuer, d.Issuer
	case ByClass:
		return d.Category.String(), d.Category.String()
	default:
		return "total", "Total"
	}
}

func ParseGroupKey(s string) (GroupKey, error) {
	switch strings.ToLower(s) {
	case "instrument", "code":
		return ByInstrument, nil
	case "market":
		return ByMarket, nil
	case "issuer":
		return ByIssuer, nil
	case "class", "category":
		return ByClass, nil
	case "total", "all":
		return ByTotal, nil
	}
	return 0, fmt.Errorf("unknown grouping key: %q", s)
}
