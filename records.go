package bondyield

import (
	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// PositionRecord is one row of the position feed: the holding of an instrument
// in one portfolio at the end of a day.
type PositionRecord struct {
	Date          date.Date           `json:"date"`
	Code          string              `json:"code"`
	Name          string              `json:"name,omitempty"`
	Market        string              `json:"market"`
	Portfolio     string              `json:"portfolio,omitempty"`
	CarryType     CarryType           `json:"carry_type"`
	Held          decimal.Decimal     `json:"held"`
	CostNetPrice  decimal.NullDecimal `json:"cost_net_price"`
	CostFullPrice decimal.NullDecimal `json:"cost_full_price"`
}

// CashFlowPeriod is one coupon period of an instrument. Interest accrues on every
// day from Start to End excluded.
type CashFlowPeriod struct {
	Code        string          `json:"code"`
	Start       date.Date       `json:"start"`
	End         date.Date       `json:"end"`
	AccrualDays int             `json:"accrual_days"`
	Interest    decimal.Decimal `json:"interest"` // per 100 face, for the whole period
}

// ValuationRecord is the mark net price of an instrument on a trading day.
type ValuationRecord struct {
	Date     date.Date       `json:"date"`
	Code     string          `json:"code"`
	NetPrice decimal.Decimal `json:"net_price"`
}

// TradeRecord is a trade normalized from one of the trade feeds.
type TradeRecord struct {
	Date            date.Date       `json:"date"`
	Code            string          `json:"code"`
	Name            string          `json:"name,omitempty"`
	Market          string          `json:"market,omitempty"`
	Portfolio       string          `json:"portfolio,omitempty"`
	Venue           Venue           `json:"venue"`
	Direction       Direction       `json:"direction"`
	Face            decimal.Decimal `json:"face"`
	NetPrice        decimal.Decimal `json:"net_price"`
	FullPrice       decimal.Decimal `json:"full_price"`
	TradeAmount     decimal.Decimal `json:"trade_amount"`
	SettleAmount    decimal.Decimal `json:"settle_amount"`
	AccruedInterest decimal.Decimal `json:"accrued_interest"`
}

// IsRealizing reports whether the trade realizes a capital gain.
func (t TradeRecord) IsRealizing() bool { return t.Venue.Secondary() && t.Direction == Sell }
