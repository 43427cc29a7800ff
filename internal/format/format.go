package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is the placeholder rendered for any metric that is not yet
// computable. It is deliberately distinct from "0": a zero is a computed
// value, N/A means there was nothing to compute from.
const NotAvailable = "N/A"

// Elapsed formats a duration using only its largest applicable unit bucket,
// the way operators read long-running task ages:
//
//	1d2h3m  → "1 Days 2 Hours"
//	2h3m    → "2 Hours 3 Minutes"
//	5m9s    → "5 Minutes"
//	9s      → "9 Seconds"
//
// Days and hours (and hours and minutes) are shown jointly; below an hour a
// single unit is enough.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d Days %d Hours", days, hours)
	case hours > 0:
		return fmt.Sprintf("%d Hours %d Minutes", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%d Minutes", minutes)
	default:
		return fmt.Sprintf("%d Seconds", seconds)
	}
}

// SplitMinutes splits a minute count into whole hours and leftover minutes
// for the paired ETA Hours / ETA Minutes columns.
func SplitMinutes(min float64) (hours, minutes int) {
	if min < 0 {
		min = 0
	}
	total := int(min)
	return total / 60, total % 60
}

// Gigabytes formats a GB quantity with one decimal place.
func Gigabytes(gb float64) string {
	return fmt.Sprintf("%.1f", gb)
}

// Number formats an integer with locale-style comma separators.
// Example: 12345678 → "12,345,678".
// Uses strconv.FormatInt directly to avoid abs64 overflow for math.MinInt64.
func Number(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		// s starts with "-"; strip it, insert commas, restore sign.
		return "-" + insertCommas(s[1:])
	}
	return insertCommas(s)
}

// insertCommas inserts comma separators into a digit string every 3 digits from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
