package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used everywhere in the store.
const DateLayout = "2006-01-02"

// ParseCurrency parses a currency amount with at most 2 fractional digits.
// Amounts must be positive unless allowZero is set, in which case zero is
// accepted (sale price and disposal value).
func ParseCurrency(s string, field string, allowZero bool) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a valid currency amount", field)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%s cannot have more than 2 decimal places", field)
	}
	if allowZero {
		if d.IsNegative() {
			return decimal.Zero, fmt.Errorf("%s must be zero or greater", field)
		}
	} else if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be greater than zero", field)
	}
	return d, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string, field string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in format YYYY-MM-DD", field)
	}
	return t, nil
}

// RequireString validates presence and length of a string field.
func RequireString(value string, field string, min, max int) error {
	length := len(strings.TrimSpace(value))
	if length < min {
		if min <= 1 {
			return fmt.Errorf("%s is required", field)
		}
		return fmt.Errorf("%s must be at least %d characters long", field, min)
	}
	if length > max {
		return fmt.Errorf("%s must be no more than %d characters long", field, max)
	}
	return nil
}

// ValidateSKU validates an explicitly supplied SKU.
func ValidateSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return fmt.Errorf("sku must be a non-empty string")
	}
	if len(sku) > 50 {
		return fmt.Errorf("sku must be 50 characters or less")
	}
	return nil
}
