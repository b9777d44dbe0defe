package bondyield

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Direction is the side of a trade. Values are the codes used by the trade feeds.
type Direction int

const (
	Buy  Direction = 1
	Sell Direction = 4
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseDirection accepts either a name ("buy", "sell") or a feed code ("1", "4").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "1":
		return Buy, nil
	case "sell", "4":
		return Sell, nil
	}
	return 0, fmt.Errorf("unknown trade direction: %q", s)
}

func (d Direction) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON accepts both the name and the numeric feed code.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var code int
		if err := json.Unmarshal(data, &code); err != nil {
			return fmt.Errorf("invalid trade direction %s", data)
		}
		s = strconv.Itoa(code)
	}
	v, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Venue is where a trade was executed.
type Venue int

const (
	// Primary is an allocation in a primary market subscription.
	Primary Venue = iota
	// Interbank is a secondary market execution on the interbank market.
	Interbank
	// Exchange is a secondary market execution on an exchange.
	Exchange
)

func (v Venue) String() string {
	switch v {
	case Primary:
		return "primary"
	case Interbank:
		return "interbank"
	case Exchange:
		return "exchange"
	default:
		return "unknown"
	}
}

// Secondary reports whether the venue is a secondary market.
func (v Venue) Secondary() bool { return v == Interbank || v == Exchange }

func ParseVenue(s string) (Venue, error) {
	switch strings.ToLower(s) {
	case "primary":
		return Primary, nil
	case "interbank":
		return Interbank, nil
	case "exchange":
		return Exchange, nil
	}
	return 0, fmt.Errorf("unknown venue: %q", s)
}

func (v Venue) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

func (v *Venue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	x, err := ParseVenue(s)
	if err != nil {
		return err
	}
	*v = x
	return nil
}

// CarryType qualifies the nature of a position in the position feed.
type CarryType int

// CarryOwned is the carry type of actual owned inventory, as opposed to
// custodial or pass-through holdings.
const CarryOwned CarryType = 3
