// Package currencyutils provides amount parsing and rounding helpers used
// throughout the pipeline.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbolRe = regexp.MustCompile(`[₹$\sA-Za-z]`)

// ParseAmount parses a string representation of an amount into a decimal
// value. It handles Indian digit grouping ("1,23,456.78"), currency symbols
// and trailing DR/CR markers. Unparseable input yields zero; amounts coming
// from marketplace exports must never abort a row.
func ParseAmount(amountStr string) decimal.Decimal {
	cleaned := strings.TrimSpace(amountStr)
	if cleaned == "" {
		return decimal.Zero
	}

	negative := strings.HasPrefix(cleaned, "-") || strings.HasPrefix(cleaned, "(")
	cleaned = strings.Trim(cleaned, "()-")
	cleaned = symbolRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return amount.Neg()
	}
	return amount
}

// Round2 rounds a decimal value to 2 places using half-away-from-zero,
// matching the rounding behaviour of the reference outputs.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
