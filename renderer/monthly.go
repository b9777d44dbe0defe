package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/bondyield"
)

// MonthlyMarkdown renders the monthly rate table, mark-to-market excluded.
func MonthlyMarkdown(rep *bondyield.Report, filters ...bondyield.Filter) string {
	var b strings.Builder
	title(&b, "Monthly Yield", rep)
	months := rep.Monthly(filters...)
	if rep.Empty() || len(months) == 0 {
		emptyNote(&b)
		return b.String()
	}
	fmt.Fprintln(&b, "| Month | Days | Avg Held | Interest | Capital Gains | Rate |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, m := range months {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s |\n",
			m.Month.From.Format("2006-01"),
			m.Month.Len(),
			face(m.AvgHeld),
			money(rep, m.Interest),
			signed(rep, m.CapitalGains),
			m.Rate,
		)
	}
	return b.String()
}
