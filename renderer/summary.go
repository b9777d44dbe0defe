package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/bondyield"
)

// SummaryMarkdown renders the period summary of each group, and the total.
func SummaryMarkdown(rep *bondyield.Report, by bondyield.GroupKey, filters ...bondyield.Filter) string {
	var b strings.Builder
	title(&b, "Attribution Summary", rep)
	if rep.Empty() {
		emptyNote(&b)
		return b.String()
	}
	fmt.Fprintf(&b, "Grouped by %s.\n\n", by)
	fmt.Fprintln(&b, "| Group | Avg Held | Avg Capital Occupied | Interest | Capital Gains | Mark-to-Market | Total | Yield |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|")
	row := func(label string, s bondyield.GroupSummary, bold bool) {
		cells := []string{
			label,
			face(s.AvgHeld),
			money(rep, s.AvgCapitalOccupied),
			money(rep, s.Interest),
			signed(rep, s.CapitalGains),
			signed(rep, s.MarkToMarket),
			signed(rep, s.Total()),
			s.Yield.SignedString(),
		}
		if bold {
			for i, c := range cells {
				cells[i] = "**" + c + "**"
			}
		}
		fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
	}
	for _, s := range rep.Summary(by, filters...) {
		label := s.Label
		if label == "" {
			label = s.Key
		}
		row(label, s, false)
	}
	if by != bondyield.ByTotal {
		for _, s := range rep.Summary(bondyield.ByTotal, filters...) {
			row("Total", s, true)
		}
	}
	return b.String()
}
