package bondyield

import (
	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// Components are the additive daily figures of a position, or of a group of positions.
type Components struct {
	Held            decimal.Decimal // face amount
	CapitalOccupied decimal.Decimal // held × cost full price / 100
	Interest        decimal.Decimal // accrued on the day
	CapitalGain     decimal.Decimal // realized on the day
	MarkToMarket    decimal.Decimal // unrealized, held / 100 × (mark − cost net)
	// Recorded is true when at least one position row backs the figures.
	Recorded bool
}

// Add returns the sum of c and o.
func (c Components) Add(o Components) Components {
	return Components{
		Held:            c.Held.Add(o.Held),
		CapitalOccupied: c.CapitalOccupied.Add(o.CapitalOccupied),
		Interest:        c.Interest.Add(o.Interest),
		CapitalGain:     c.CapitalGain.Add(o.CapitalGain),
		MarkToMarket:    c.MarkToMarket.Add(o.MarkToMarket),
		Recorded:        c.Recorded || o.Recorded,
	}
}

// Total returns the profit of the day: interest, capital gain and mark-to-market.
func (c Components) Total() decimal.Decimal {
	return c.Interest.Add(c.CapitalGain).Add(c.MarkToMarket)
}

// Yield returns the annualized yield of the day on the capital occupied, 0 without capital.
func (c Components) Yield() Percent {
	return ratio(c.Interest.Mul(daysPerYear).Add(c.CapitalGain).Add(c.MarkToMarket), c.CapitalOccupied)
}

// YieldExMarkToMarket is like Yield but ignores the unrealized profit.
func (c Components) YieldExMarkToMarket() Percent {
	return ratio(c.Interest.Mul(daysPerYear).Add(c.CapitalGain), c.CapitalOccupied)
}

// DailyAttribution is the profit attribution of one instrument on one day.
type DailyAttribution struct {
	Date     date.Date
	Code     string
	Name     string
	Market   string
	Issuer   string
	Category Category

	CostNetPrice  decimal.Decimal
	CostFullPrice decimal.Decimal
	MarkPrice     decimal.Decimal
	PriceSource   PriceSource
	// InterestRate is the interest accrued on the day per 100 face.
	InterestRate decimal.Decimal

	Components
}

// Attribute builds the daily attribution of one instrument over r.
//
// A day gets a row when a position is recorded or a gain is realized. Missing cost
// prices contribute no capital occupied and no mark-to-market. The market of a
// day without position row is the latest known market of the instrument.
func Attribute(r date.Range, inst Instrument, tl *Timeline, acc *Accrual, val *Valuation, gains []CapitalGain) []DailyAttribution {
	if !r.Valid() {
		return nil
	}
	gainOn := make(map[date.Date]decimal.Decimal, len(gains))
	for _, g := range gains {
		gainOn[g.Date] = gainOn[g.Date].Add(g.Gain)
	}
	market := tl.Market()
	if market == "" {
		market = inst.Market
	}

	var out []DailyAttribution
	for day := range r.Days() {
		p := tl.At(day)
		gain, realized := gainOn[day]
		if !p.Recorded && !realized {
			continue
		}
		if p.Market != "" {
			market = p.Market
		}
		d := DailyAttribution{
			Date:          day,
			Code:          inst.Code,
			Name:          inst.Name,
			Market:        market,
			Issuer:        inst.Issuer,
			Category:      inst.Category(),
			CostNetPrice:  p.CostNetPrice.Decimal,
			CostFullPrice: p.CostFullPrice.Decimal,
			InterestRate:  acc.PerDay(day),
		}
		d.MarkPrice, d.PriceSource = val.Price(day)
		d.Held = p.Held
		d.Recorded = p.Recorded
		d.Interest = d.InterestRate.Mul(p.Held).Div(hundred)
		d.CapitalGain = gain
		if p.CostFullPrice.Valid {
			d.CapitalOccupied = p.Held.Mul(p.CostFullPrice.Decimal).Div(hundred)
		}
		if p.CostNetPrice.Valid {
			d.MarkToMarket = p.Held.Div(hundred).Mul(d.MarkPrice.Sub(p.CostNetPrice.Decimal))
		}
		out = append(out, d)
	}
	return out
}
