package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/bondyield"
)

// HoldingsMarkdown renders the positions held at the end of the range, by category.
func HoldingsMarkdown(rep *bondyield.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings on %s\n\n", rep.Range().To)
	holdings := rep.Holdings()
	if len(holdings) == 0 {
		emptyNote(&b)
		return b.String()
	}
	for _, cat := range []bondyield.Category{bondyield.Rate, bondyield.Credit, bondyield.CD} {
		ConditionalBlock(&b, func(w io.Writer) bool {
			fmt.Fprintf(w, "## %s\n\n", cat)
			fmt.Fprintln(w, "| Code | Name | Market | Issuer | Coupon | Held | Cost Net | Cost Full | Maturity |")
			fmt.Fprintln(w, "|:---|:---|:---|:---|---:|---:|---:|---:|:---|")
			printed := false
			for _, h := range holdings {
				if h.Instrument.Category() != cat {
					continue
				}
				maturity := "-"
				if !h.Instrument.Maturity.IsZero() {
					maturity = h.Instrument.Maturity.String()
				}
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
					h.Instrument.Code, h.Instrument.Name, h.Instrument.Market, h.Instrument.Issuer,
					price(h.Instrument.Coupon()),
					face(h.Position.Held),
					price(h.Position.CostNetPrice),
					price(h.Position.CostFullPrice),
					maturity,
				)
				printed = true
			}
			fmt.Fprintln(w)
			return printed
		})
	}
	return b.String()
}
