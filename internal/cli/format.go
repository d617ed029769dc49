// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/cfohelper/internal/config"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return groupDigits(strconv.FormatInt(n, 10))
}

// groupDigits inserts thousands separators into an optionally signed digit string.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatWhole rounds v half away from zero and groups the digits.
// e.g., 240000.4 -> "240,000", -49999.5 -> "-50,000"
func FormatWhole(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	s := decimal.NewFromFloat(v).Round(0).String()
	if s == "-0" {
		s = "0"
	}
	return groupDigits(s)
}

// FormatAmount formats an already converted amount with a currency symbol.
// Negative values keep the sign after the symbol: "$-50,000".
func FormatAmount(converted float64, symbol string) string {
	return symbol + FormatWhole(converted)
}

// FormatMoney converts a base-currency amount into c and formats it.
func FormatMoney(amount float64, c config.Currency) string {
	return FormatAmount(amount*c.Rate, c.Symbol)
}

// FormatCompact formats an already converted amount with K/M/B suffixes,
// for chart axes where space is tight. e.g., 1234567 -> "$1.2M"
func FormatCompact(converted float64, symbol string) string {
	abs := math.Abs(converted)
	sign := ""
	if converted < 0 {
		sign = "-"
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s%s%.1fB", sign, symbol, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s%s%.1fM", sign, symbol, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s%s%.0fK", sign, symbol, abs/1_000)
	default:
		return fmt.Sprintf("%s%s%.0f", sign, symbol, abs)
	}
}

// FormatMargin formats a percentage value with one decimal, without the sign.
// e.g., 48.2804 -> "48.3"
func FormatMargin(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "0.0"
	}
	return decimal.NewFromFloat(pct).StringFixed(1)
}

// FormatPercent formats a percentage value (not a 0-1 ratio) for display.
// e.g., 48.2804 -> "48.3%"
func FormatPercent(pct float64) string {
	return FormatMargin(pct) + "%"
}

// FormatHeadcount formats the team size slider value.
func FormatHeadcount(n float64) string {
	people := FormatWhole(n)
	if people == "1" {
		return "1 person"
	}
	return people + " people"
}

// FormatRate formats a currency rate relative to the base currency.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// FormatUSD formats a mocked billing amount with cents.
func FormatUSD(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
