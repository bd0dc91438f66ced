// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCompact formats a value with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M", -2500000000 -> "-2.5B"
func FormatCompact(v float64) string {
	abs := math.Abs(v)

	switch {
	case math.IsInf(v, 0) || math.IsNaN(v):
		return FormatInfinite(v)
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
}

// FormatMoney formats an amount with a currency label, thousands separators
// and two decimals. e.g., -1234.5 -> "-$1,234.50"
func FormatMoney(v float64, label string) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return FormatInfinite(v)
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("%s%s%s.%02d", sign, label, FormatNumber(cents/100), cents%100)
}

// FormatCompactMoney formats an amount with a currency label and a suffix.
func FormatCompactMoney(v float64, label string) string {
	if v < 0 {
		return "-" + label + FormatCompact(-v)
	}
	return label + FormatCompact(v)
}

// FormatInfinite renders non-finite values.
func FormatInfinite(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	return "n/a"
}

// FormatMonth formats a break-even month, where 0 means never reached.
func FormatMonth(m int) string {
	if m <= 0 {
		return "not reached"
	}
	return fmt.Sprintf("month %d", m)
}

// FormatMonths formats a span of months as years and months.
// e.g., 15 -> "1y 3m", 12 -> "1y", 7 -> "7m"
func FormatMonths(months int) string {
	if months <= 0 {
		return "0m"
	}

	years := months / 12
	rem := months % 12

	if years > 0 && rem > 0 {
		return fmt.Sprintf("%dy %dm", years, rem)
	}
	if years > 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dm", rem)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
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

// FormatPercent formats a fraction as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatChange formats a signed whole-number percent change.
// e.g., 10 -> "+10%", -5 -> "-5%", 0 -> "0%"
func FormatChange(pct int) string {
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

// FormatDelta formats the signed difference between two amounts.
func FormatDelta(current, previous float64, label string) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta, label)
	}
	return FormatMoney(delta, label)
}
