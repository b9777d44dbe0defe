package bondyield

import (
	"slices"

	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// Instrument is the static reference data of a bond or a certificate of deposit.
type Instrument struct {
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	FullName        string              `json:"full_name,omitempty"`
	Market          string              `json:"market,omitempty"`
	Class           int                 `json:"class"`
	ClassName       string              `json:"class_name,omitempty"`
	Issuer          string              `json:"issuer,omitempty"`
	CouponRate      decimal.NullDecimal `json:"coupon_rate"`
	IssueCouponRate decimal.NullDecimal `json:"issue_coupon_rate"`
	IssueDate       date.Date           `json:"issue_date,omitzero"`
	Maturity        date.Date           `json:"maturity,omitzero"`
	Term            string              `json:"term,omitempty"`
}

// Category returns the rate, credit or cd category of the instrument.
func (i Instrument) Category() Category { return CategoryOf(i.Class) }

// Coupon returns the current coupon rate, or the rate at issue when the current one is unknown.
func (i Instrument) Coupon() decimal.NullDecimal {
	if i.CouponRate.Valid {
		return i.CouponRate
	}
	return i.IssueCouponRate
}

// Catalog indexes instruments by code.
type Catalog struct {
	byCode map[string]Instrument
	codes  []string
}

// NewCatalog returns a catalog of instruments. The last instrument of a given code wins.
func NewCatalog(instruments []Instrument) *Catalog {
	c := &Catalog{byCode: make(map[string]Instrument, len(instruments))}
	for _, inst := range instruments {
		c.Add(inst)
	}
	return c
}

// Add adds or replaces an instrument.
func (c *Catalog) Add(inst Instrument) {
	if _, exists := c.byCode[inst.Code]; !exists {
		i, _ := slices.BinarySearch(c.codes, inst.Code)
		c.codes = slices.Insert(c.codes, i, inst.Code)
	}
	c.byCode[inst.Code] = inst
}

// Get returns the instrument with the given code.
func (c *Catalog) Get(code string) (Instrument, bool) {
	if c == nil {
		return Instrument{}, false
	}
	inst, ok := c.byCode[code]
	return inst, ok
}

// Codes returns the sorted codes of the catalog.
func (c *Catalog) Codes() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.codes)
}

// Len returns the number of instruments.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.codes)
}
