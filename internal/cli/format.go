// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with the currency symbol, two decimals and
// comma separators. e.g., 1234.5 -> "$1,234.50"
func FormatMoney(d decimal.Decimal, currency string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + currency + groupThousands(whole) + "." + frac
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupThousands(fmt.Sprintf("%d", n))
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 rate with one decimal.
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// FormatRatio formats "within of total days".
func FormatRatio(within, total int) string {
	noun := "days"
	if total == 1 {
		noun = "day"
	}
	return fmt.Sprintf("%s of %s %s", FormatNumber(int64(within)), FormatNumber(int64(total)), noun)
}
