package bondyield

import (
	"slices"

	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// CapitalGain is the gain realized by the secondary market sales of one
// instrument on one day.
type CapitalGain struct {
	Date   date.Date
	Code   string
	Market string
	// Face is the total face amount sold.
	Face decimal.Decimal
	// Amount is the total trade cash amount.
	Amount decimal.Decimal
	// WeightedPrice is the volume-weighted sale net price, per 100 face.
	WeightedPrice decimal.Decimal
	// PriorCostNetPrice is the cost net price at the end of the previous day.
	PriorCostNetPrice decimal.Decimal
	// Substituted is true when PriorCostNetPrice was not recorded and comes from the fallback policy.
	Substituted bool
	Gain        decimal.Decimal
}

// CapitalGains computes the daily realized gains of the instrument of tl from its trades.
//
// Only secondary market sells of tl.Code realize a gain. All the sales of a day are
// merged into a single volume-weighted price, compared to the cost net price of the
// previous day.
func CapitalGains(trades []TradeRecord, tl *Timeline, policy CostPriceFallbackPolicy) []CapitalGain {
	byDay := make(map[date.Date]*CapitalGain)
	for _, t := range trades {
		if !t.IsRealizing() || t.Code != tl.Code {
			continue
		}
		g, ok := byDay[t.Date]
		if !ok {
			g = &CapitalGain{Date: t.Date, Code: t.Code, Market: t.Market}
			byDay[t.Date] = g
		}
		g.Face = g.Face.Add(t.Face)
		g.Amount = g.Amount.Add(t.TradeAmount)
	}

	gains := make([]CapitalGain, 0, len(byDay))
	for day, g := range byDay {
		if g.Face.IsZero() {
			continue
		}
		g.WeightedPrice = g.Amount.Div(g.Face).Mul(hundred)

		prior := tl.At(day.Add(-1))
		if prior.CostNetPrice.Valid {
			g.PriorCostNetPrice = prior.CostNetPrice.Decimal
		} else {
			g.PriorCostNetPrice = policy.fallback(tl, day.Add(-1))
			g.Substituted = true
		}
		g.Gain = g.WeightedPrice.Sub(g.PriorCostNetPrice).Mul(g.Face).Div(hundred)
		gains = append(gains, *g)
	}
	slices.SortFunc(gains, func(a, b CapitalGain) int { return a.Date.Compare(b.Date) })
	return gains
}
