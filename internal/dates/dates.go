package dates

import (
	"fmt"
	"time"
)

// ParseLocalDate parses a YYYY-MM-DD wire date as local midnight.
// Parsing in UTC would shift the displayed day for timezones behind UTC,
// so the calendar fields are interpreted in the local zone instead.
func ParseLocalDate(s string) (time.Time, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("invalid date %q: out of range", s)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), nil
}

// Today returns the current wall-clock date truncated to local midnight.
func Today() time.Time {
	return Midnight(time.Now())
}

// Midnight truncates t to local midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthStartOffset returns the first day of the month n months after t's month.
// Negative n moves backwards.
func MonthStartOffset(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}

// MonthEndOffset returns the last day of the month n months after t's month.
// Day 0 of the following month normalizes to the last day of the target month.
func MonthEndOffset(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n+1), 0, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day difference to - from, rounding up partial
// days the way a countdown does ("due in 3 days" from any time of day).
func DaysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// FormatRelative renders d relative to today for list rows: "Today",
// "Tomorrow", "in N days" inside a week, "N days ago (OVERDUE)" for the
// past, and an absolute date otherwise.
func FormatRelative(d, today time.Time) string {
	d = Midnight(d)
	today = Midnight(today)

	switch days := DaysBetween(today, d); {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days > 1 && days < 7:
		return fmt.Sprintf("in %d days", days)
	case days < 0:
		return fmt.Sprintf("%d days ago (OVERDUE)", -days)
	default:
		return d.Format("1/2/2006")
	}
}
