// Package currencyutils provides currency and decimal amount operations used
// at the pipeline's edges.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// IsCurrencyCode reports whether s has the shape of an ISO 4217 alphabetic
// code: exactly three uppercase ASCII letters. The pipeline does not carry a
// full code registry; shape validation is enough to reject symbols and free
// text the model might emit.
func IsCurrencyCode(s string) bool {
	return currencyCodeRe.MatchString(s)
}

// NormalizeCurrencyCode upper-cases and trims a candidate currency code.
// Returns the normalized code and whether it is valid.
func NormalizeCurrencyCode(s string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(s))
	return code, IsCurrencyCode(code)
}

// ParseAmount parses a string representation of an amount into a decimal
// value. It handles formats like "1,234.56", "1.234,56", "1'234.56" and
// embedded currency markers.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if amountStr == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips currency symbols and separator conventions so the
// result parses with decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	re := regexp.MustCompile(`[€$£¥₣₹\s]|[A-Z]{3}`)
	amountStr = re.ReplaceAllString(amountStr, "")

	// European format (1.234,56) vs US format (1,234.56)
	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts) > 1 && len(parts[len(parts)-1]) <= 2 {
			// Comma as decimal separator (1234,56)
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Comma as thousand separator (1,234)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Apostrophes as thousand separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return strings.TrimSpace(amountStr)
}

// FormatAmount renders an amount with two decimal places and its currency
// code, e.g. "42.10 USD". Used when describing transactions in prompts.
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}
