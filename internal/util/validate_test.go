package util

import (
	"testing"
)

func TestParseCurrency_Valid(t *testing.T) {
	testCases := []string{"0.01", "1", "100.5", "9999999.99"}

	for _, amount := range testCases {
		if _, err := ParseCurrency(amount, "Amount", false); err != nil {
			t.Errorf("ParseCurrency(%q) error = %v, want nil", amount, err)
		}
	}
}

func TestParseCurrency_ZeroAndNegative(t *testing.T) {
	testCases := []string{"0", "0.00", "-0.01", "-100"}

	for _, amount := range testCases {
		if _, err := ParseCurrency(amount, "Amount", false); err == nil {
			t.Errorf("ParseCurrency(%q) error = nil, want error", amount)
		}
	}
}

func TestParseCurrency_ZeroAllowed(t *testing.T) {
	if _, err := ParseCurrency("0", "Sold price", true); err != nil {
		t.Errorf("ParseCurrency(0, allowZero) error = %v, want nil", err)
	}
	if _, err := ParseCurrency("-1", "Sold price", true); err == nil {
		t.Error("ParseCurrency(-1, allowZero) error = nil, want error")
	}
}

func TestParseCurrency_TooManyDecimals(t *testing.T) {
	testCases := []string{"1.999", "0.001", "25.123"}

	for _, amount := range testCases {
		if _, err := ParseCurrency(amount, "Amount", false); err == nil {
			t.Errorf("ParseCurrency(%q) error = nil, want error", amount)
		}
	}
}

func TestParseCurrency_Malformed(t *testing.T) {
	testCases := []string{"", "abc", "12,34", "$10"}

	for _, amount := range testCases {
		if _, err := ParseCurrency(amount, "Amount", false); err == nil {
			t.Errorf("ParseCurrency(%q) error = nil, want error", amount)
		}
	}
}

func TestParseDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		if _, err := ParseDate(date, "Date"); err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestParseDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		if _, err := ParseDate(date, "Date"); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", date)
		}
	}
}

func TestRequireString(t *testing.T) {
	if err := RequireString("Vintage Tee", "Name", 2, 100); err != nil {
		t.Errorf("RequireString() error = %v, want nil", err)
	}
	if err := RequireString("", "Name", 1, 100); err == nil {
		t.Error("RequireString(\"\") error = nil, want error")
	}
	if err := RequireString("   ", "Name", 1, 100); err == nil {
		t.Error("RequireString(whitespace) error = nil, want error")
	}
	if err := RequireString("x", "Name", 2, 100); err == nil {
		t.Error("RequireString(too short) error = nil, want error")
	}
}

func TestValidateSKU(t *testing.T) {
	if err := ValidateSKU("GS-20240101-1234"); err != nil {
		t.Errorf("ValidateSKU() error = %v, want nil", err)
	}
	if err := ValidateSKU(""); err == nil {
		t.Error("ValidateSKU(\"\") error = nil, want error")
	}

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateSKU(string(long)); err == nil {
		t.Error("ValidateSKU(51 chars) error = nil, want error")
	}
}
