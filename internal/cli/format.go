// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatCount formats a row count with comma separators.
func FormatCount(n int) string {
	return FormatNumber(int64(n))
}

// FormatFixed rounds v to places decimals and adds comma separators to the
// integer part. Rounding is exact on the binary value with ties to even, so
// 150.5 -> "150" and 2.675 -> "2.67".
// e.g., FormatFixed(1234.6, 0) -> "1,235", FormatFixed(7.5, 2) -> "7.50"
func FormatFixed(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	fixed := strconv.FormatFloat(v, 'f', places, 64)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		intPart = humanize.Comma(n)
	}
	if frac != "" {
		intPart += "." + frac
	}
	return sign + intPart
}

// FormatCurrency formats a dollar amount rounded to whole dollars.
// e.g., 1234567.4 -> "$1,234,567"
func FormatCurrency(v float64) string {
	s := FormatFixed(v, 0)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// FormatRate formats an interest rate that is already expressed in percent.
// e.g., 7.5 -> "7.50%"
func FormatRate(pct float64) string {
	return FormatFixed(pct, 2) + "%"
}

// FormatPercent formats a 0-100 share with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatCompact formats a value with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M", 1234567890 -> "1.2B"
func FormatCompact(v float64) string {
	abs := math.Abs(v)

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
}

// FormatDate formats an issue date for tables and axis labels.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ShortWeekday returns a 3-letter abbreviation for a weekday name.
func ShortWeekday(day string) string {
	if len(day) >= 3 {
		return day[:3]
	}
	return "???"
}
