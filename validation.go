package bondyield

import (
	"errors"
	"fmt"
)

// Validate checks the reference data of an instrument.
func (i Instrument) Validate() error {
	if i.Code == "" {
		return errors.New("instrument code is required")
	}
	return nil
}

// Validate checks a position record. Short positions are valid.
func (p PositionRecord) Validate() error {
	if p.Code == "" || p.Date.IsZero() {
		return fmt.Errorf("position %q on %s: code and date are required", p.Code, p.Date)
	}
	return nil
}

// Validate checks a coupon period. A period with no accrual days is valid, it accrues nothing.
func (c CashFlowPeriod) Validate() error {
	if c.Code == "" {
		return errors.New("cash flow code is required")
	}
	if !c.End.After(c.Start) {
		return fmt.Errorf("cash flow %s: end %s must be after start %s", c.Code, c.End, c.Start)
	}
	return nil
}

// Validate checks a valuation record.
func (v ValuationRecord) Validate() error {
	if v.Code == "" || v.Date.IsZero() {
		return fmt.Errorf("valuation %q on %s: code and date are required", v.Code, v.Date)
	}
	if !v.NetPrice.IsPositive() {
		return fmt.Errorf("valuation %s on %s: net price must be positive, got %s", v.Code, v.Date, v.NetPrice)
	}
	return nil
}

// Validate checks a normalized trade.
func (t TradeRecord) Validate() error {
	if t.Code == "" || t.Date.IsZero() {
		return fmt.Errorf("%s trade %q on %s: code and date are required", t.Venue, t.Code, t.Date)
	}
	if t.Direction != Buy && t.Direction != Sell {
		return fmt.Errorf("%s trade %s on %s: unknown direction %d", t.Venue, t.Code, t.Date, int(t.Direction))
	}
	if !t.Face.IsPositive() {
		return fmt.Errorf("%s trade %s on %s: face amount must be positive, got %s", t.Venue, t.Code, t.Date, t.Face)
	}
	return nil
}

// Validate returns the validation failures of all records, joined.
func Validate[T interface{ Validate() error }](records []T) error {
	var errs error
	for _, r := range records {
		errs = errors.Join(errs, r.Validate())
	}
	return errs
}
