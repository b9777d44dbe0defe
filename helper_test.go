package bondyield

import (
	"testing"

	"github.com/etnz/bondyield/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// dec is a helper for test to create decimals from const.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// price is a helper for test to create a known price.
func price(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

// day is a helper for test to create dates from const.
func day(s string) date.Date { return date.MustParse(s) }

func days(from, to string) date.Range { return date.NewRange(day(from), day(to)) }

// holding returns one position record per day of r.
func holding(code string, r date.Range, held, costNet, costFull string) []PositionRecord {
	var out []PositionRecord
	for on := range r.Days() {
		out = append(out, PositionRecord{
			Date:          on,
			Code:          code,
			Market:        "IB",
			CarryType:     CarryOwned,
			Held:          dec(held),
			CostNetPrice:  price(costNet),
			CostFullPrice: price(costFull),
		})
	}
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) bool {
	t.Helper()
	if dec(want).Equal(got) {
		return true
	}
	return assert.Fail(t, "decimals differ: want "+want+", got "+got.String(), msgAndArgs...)
}
