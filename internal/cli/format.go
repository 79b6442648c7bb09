// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney renders a whole-unit amount with its currency symbol.
// e.g., 1250 with "€" -> "€1,250"
func FormatMoney(amount int, currency string) string {
	if currency == "" {
		currency = "€"
	}
	if amount < 0 {
		return "-" + currency + FormatNumber(int64(-amount))
	}
	return currency + FormatNumber(int64(amount))
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

// FormatStars renders a star count with its glyph. Singular-aware.
func FormatStars(n int) string {
	if n == 1 {
		return "1 star ★"
	}
	return fmt.Sprintf("%d stars ★", n)
}

// FormatPoints renders a signed point delta, e.g. "+40 pts" or "-10 pts".
func FormatPoints(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d pts", n)
	}
	return fmt.Sprintf("%d pts", n)
}

// FormatLives renders remaining lives as filled and hollow hearts.
func FormatLives(lives, max int) string {
	if lives < 0 {
		lives = 0
	}
	if lives > max {
		lives = max
	}
	return strings.Repeat("♥", lives) + strings.Repeat("♡", max-lives)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDate renders a history date compactly, e.g. "Sat Aug 15".
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 2")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
