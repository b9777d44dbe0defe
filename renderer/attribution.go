package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/bondyield"
	"github.com/shopspring/decimal"
)

// DailyMarkdown renders one row per instrument and day.
func DailyMarkdown(rep *bondyield.Report, filters ...bondyield.Filter) string {
	var b strings.Builder
	title(&b, "Daily Attribution", rep)
	daily := rep.Daily(filters...)
	if len(daily) == 0 {
		emptyNote(&b)
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Code | Name | Held | Cost | Mark | Capital Occupied | Interest | Capital Gain | Mark-to-Market | Total | Yield | Yield ex MtM |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, d := range daily {
		mark := d.MarkPrice.StringFixed(4)
		if d.PriceSource != bondyield.Actual {
			mark += "*"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			d.Date, d.Code, d.Name,
			face(d.Held),
			price(decimal.NewNullDecimal(d.CostNetPrice)),
			mark,
			money(rep, d.CapitalOccupied),
			money(rep, d.Interest),
			signed(rep, d.CapitalGain),
			signed(rep, d.MarkToMarket),
			signed(rep, d.Total()),
			d.Yield().SignedString(),
			d.YieldExMarkToMarket().SignedString(),
		)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "_* mark price carried forward or defaulted._")
	return b.String()
}

// CumulativeMarkdown renders the cumulative series of the instruments matching filters.
func CumulativeMarkdown(rep *bondyield.Report, filters ...bondyield.Filter) string {
	var b strings.Builder
	title(&b, "Cumulative Attribution", rep)
	if rep.Empty() {
		emptyNote(&b)
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Held | Capital Occupied | Interest | Capital Gains | Mark-to-Market | Total | Yield |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|")
	for _, c := range rep.Cumulative(filters...) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			c.Date,
			face(c.Held),
			money(rep, c.CumCapitalOccupied),
			money(rep, c.CumInterest),
			signed(rep, c.CumCapitalGains),
			signed(rep, c.MarkToMarketDelta),
			signed(rep, c.CumTotal()),
			c.Yield.SignedString(),
		)
	}
	return b.String()
}
