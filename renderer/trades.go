package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/bondyield"
)

// TradesMarkdown renders the trades of the range.
func TradesMarkdown(rep *bondyield.Report) string {
	var b strings.Builder
	title(&b, "Trades", rep)
	trades := rep.Trades()
	if len(trades) == 0 {
		fmt.Fprintln(&b, "_No trade in the range._")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Code | Name | Venue | Direction | Face | Net Price | Settle Amount |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|:---|---:|---:|---:|")
	for _, t := range trades {
		name := t.Name
		if inst, ok := rep.Catalog.Get(t.Code); ok && name == "" {
			name = inst.Name
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			t.Date, t.Code, name, t.Venue, t.Direction,
			face(t.Face),
			t.NetPrice.StringFixed(4),
			money(rep, t.SettleAmount),
		)
	}
	return b.String()
}
