package bondyield

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a rate expressed in percent, e.g. 18.25 for 18.25%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

var hundred = decimal.NewFromInt(100)

// ratio returns num / den in percent, or 0 when den is zero.
func ratio(num, den decimal.Decimal) Percent {
	if den.IsZero() {
		return 0
	}
	return Percent(num.Div(den).Mul(hundred).InexactFloat64())
}
