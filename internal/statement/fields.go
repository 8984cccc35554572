package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the statement date layout, e.g. 09/15/2025.
const DateFormat = "01/02/2006"

// InvalidDateError reports a date field that does not match DateFormat.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date value (expected MM/DD/YYYY): %q", e.Value)
}

// InvalidAmountError reports an amount field that is not a decimal number.
type InvalidAmountError struct {
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount value: %q", e.Value)
}

// ParseDate parses a statement date field. Surrounding whitespace is
// trimmed before matching.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: s}
	}
	return d, nil
}

// ParseAmount parses a statement amount field into an exact decimal.
// Whitespace is trimmed, thousands-separator commas are removed, and one
// leading "+" is stripped. An empty field is zero, not an error. Amounts
// never go through binary floating point.
func ParseAmount(s string) (decimal.Decimal, error) {
	v := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v = strings.TrimPrefix(v, "+")
	if v == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, &InvalidAmountError{Value: v}
	}
	return amount, nil
}
