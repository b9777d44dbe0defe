package bondyield

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
)

// VenueMapping locates the fields of a raw trade row of one feed, as JSONPath
// expressions. Empty paths leave the field to its zero value.
type VenueMapping struct {
	Venue           Venue
	Date            string
	Code            string
	Name            string
	Market          string
	Portfolio       string
	Direction       string
	Face            string
	NetPrice        string
	FullPrice       string
	TradeAmount     string
	SettleAmount    string
	AccruedInterest string
}

// Mappings of the three trade feeds. Interbank trades are dated by settlement,
// exchange trades by execution, and the exchange feed suffixes its amount columns.
var (
	PrimaryMapping = VenueMapping{
		Venue:     Primary,
		Date:      "$.settle_date",
		Code:      "$.bond_code",
		Name:      "$.bond_name",
		Market:    "$.market_code",
		Portfolio: "$.portfolio_no",
		Direction: "$.direction",
		Face:      "$.bond_amt_cash",
		NetPrice:  "$.net_price",
	}
	InterbankMapping = VenueMapping{
		Venue:           Interbank,
		Date:            "$.settle_date",
		Code:            "$.bond_code",
		Name:            "$.bond_name",
		Market:          "$.market_code",
		Portfolio:       "$.portfolio_no",
		Direction:       "$.direction",
		Face:            "$.bond_amt_cash",
		NetPrice:        "$.net_price",
		FullPrice:       "$.full_price",
		TradeAmount:     "$.trade_amt",
		SettleAmount:    "$.settle_amt",
		AccruedInterest: "$.accrued_inst_cash",
	}
	ExchangeMapping = VenueMapping{
		Venue:           Exchange,
		Date:            "$.trade_date",
		Code:            "$.bond_code",
		Name:            "$.bond_name",
		Market:          "$.market_code",
		Portfolio:       "$.portfolio_no",
		Direction:       "$.direction",
		Face:            "$.bond_amt_cash2",
		NetPrice:        "$.net_price",
		FullPrice:       "$.full_price",
		TradeAmount:     "$.trade_amt",
		SettleAmount:    "$.settle_amt",
		AccruedInterest: "$.accrued_inst_cash2",
	}
)

// MappingFor returns the mapping of a venue.
func MappingFor(v Venue) VenueMapping {
	switch v {
	case Interbank:
		return InterbankMapping
	case Exchange:
		return ExchangeMapping
	default:
		return PrimaryMapping
	}
}

// Normalize converts a raw trade row into a TradeRecord.
// Date, code, direction and face amount are required.
func (m VenueMapping) Normalize(row any) (TradeRecord, error) {
	t := TradeRecord{Venue: m.Venue}
	var err error
	str := func(path string, required bool) string {
		if err != nil {
			return ""
		}
		var v any
		v, err = lookup(path, row, required)
		if v == nil {
			return ""
		}
		return stringOf(v)
	}
	dec := func(path string, required bool) decimal.Decimal {
		s := str(path, required)
		if err != nil || s == "" {
			return decimal.Zero
		}
		var d decimal.Decimal
		d, err = decimal.NewFromString(s)
		if err != nil {
			err = fmt.Errorf("invalid number at %s: %w", path, err)
		}
		return d
	}

	day := str(m.Date, true)
	t.Code = str(m.Code, true)
	t.Name = str(m.Name, false)
	t.Market = str(m.Market, false)
	t.Portfolio = str(m.Portfolio, false)
	direction := str(m.Direction, true)
	t.Face = dec(m.Face, true)
	t.NetPrice = dec(m.NetPrice, false)
	t.FullPrice = dec(m.FullPrice, false)
	t.TradeAmount = dec(m.TradeAmount, false)
	t.SettleAmount = dec(m.SettleAmount, false)
	t.AccruedInterest = dec(m.AccruedInterest, false)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("normalizing %s trade: %w", m.Venue, err)
	}
	if len(day) > len(date.DateFormat) {
		day = day[:len(date.DateFormat)] // timestamps
	}
	if t.Date, err = date.Parse(day); err != nil {
		return TradeRecord{}, fmt.Errorf("normalizing %s trade %s: %w", m.Venue, t.Code, err)
	}
	if t.Direction, err = ParseDirection(direction); err != nil {
		return TradeRecord{}, fmt.Errorf("normalizing %s trade %s: %w", m.Venue, t.Code, err)
	}
	return t, nil
}

// NormalizeRows normalizes a batch of raw rows.
func (m VenueMapping) NormalizeRows(rows []map[string]any) ([]TradeRecord, error) {
	out := make([]TradeRecord, 0, len(rows))
	for i, row := range rows {
		t, err := m.Normalize(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func lookup(path string, row any, required bool) (any, error) {
	if path == "" {
		if required {
			return nil, fmt.Errorf("no path for a required field")
		}
		return nil, nil
	}
	v, err := jsonpath.Get(path, row)
	if err != nil {
		if required {
			return nil, fmt.Errorf("missing %s: %w", path, err)
		}
		return nil, nil
	}
	// jsonpath returns either a single value or a list, keep the first one if any.
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil, nil
		}
		v = list[0]
	}
	if v == nil && required {
		return nil, fmt.Errorf("null %s", path)
	}
	return v, nil
}

func stringOf(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case []byte:
		return string(x)
	case float64:
		return decimal.NewFromFloat(x).String()
	case int64:
		return decimal.NewFromInt(x).String()
	case int:
		return decimal.NewFromInt(int64(x)).String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
