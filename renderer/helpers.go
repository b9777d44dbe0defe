package renderer

import (
	"bytes"
	"io"

	"github.com/etnz/bondyield"
	"github.com/shopspring/decimal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// money formats an amount in the report currency.
func money(rep *bondyield.Report, v decimal.Decimal) string {
	return bondyield.M(v, rep.Currency).String()
}

func signed(rep *bondyield.Report, v decimal.Decimal) string {
	return bondyield.M(v, rep.Currency).SignedString()
}

// face formats a face amount, without currency.
func face(v decimal.Decimal) string { return v.StringFixed(0) }

// price formats a price per 100 face, "-" when unknown.
func price(v decimal.NullDecimal) string {
	if !v.Valid {
		return "-"
	}
	return v.Decimal.StringFixed(4)
}
