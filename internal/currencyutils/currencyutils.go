// Package currencyutils provides common amount parsing and formatting
// operations used throughout the application.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a raw amount string into a decimal value. It
// tolerates currency symbols, thousands separators and accounting-style
// parentheses for negatives, e.g. "$1,234.56" or "(45.00)".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negativeFromParens := strings.HasPrefix(amountStr, "(") && strings.HasSuffix(amountStr, ")")

	amount, err := decimal.NewFromString(StandardizeAmount(amountStr))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", amountStr)
	}
	if negativeFromParens {
		amount = amount.Abs().Neg()
	}
	return amount, nil
}

// StandardizeAmount strips currency symbols, thousands separators and
// parentheses so the remainder can be parsed by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	return strings.NewReplacer(",", "", "$", "", "(", "", ")", "", " ", "").Replace(amountStr)
}

// FormatAmount renders a decimal with two fraction digits for display.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
