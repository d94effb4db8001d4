package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseLocalDate(t *testing.T) {
	// Act
	got, err := ParseLocalDate("2026-03-15")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := date(2026, time.March, 15)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got.Location() != time.Local {
		t.Errorf("expected local zone, got %v", got.Location())
	}
}

func TestParseLocalDateRejectsMalformed(t *testing.T) {
	cases := []string{"", "2026", "not-a-date", "2026-13-01", "2026-00-10", "2026-02-40"}

	for _, s := range cases {
		if _, err := ParseLocalDate(s); err == nil {
			t.Errorf("expected error for %q, got none", s)
		}
	}
}

func TestMidnightTruncates(t *testing.T) {
	// Arrange
	in := time.Date(2026, time.August, 29, 17, 45, 12, 999, time.Local)

	// Act
	got := Midnight(in)

	// Assert
	if !got.Equal(date(2026, time.August, 29)) {
		t.Errorf("expected midnight of same day, got %v", got)
	}
}

func TestMonthStartOffset(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"same month", date(2026, time.August, 29), 0, date(2026, time.August, 1)},
		{"previous month", date(2026, time.August, 29), -1, date(2026, time.July, 1)},
		{"across year boundary", date(2026, time.January, 10), -2, date(2025, time.November, 1)},
		{"forward across year", date(2026, time.November, 3), 3, date(2027, time.February, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MonthStartOffset(tc.in, tc.n); !got.Equal(tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestMonthEndOffset(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"current month end", date(2026, time.August, 12), 0, date(2026, time.August, 31)},
		{"february non-leap", date(2026, time.January, 1), 1, date(2026, time.February, 28)},
		{"february leap", date(2028, time.January, 1), 1, date(2028, time.February, 29)},
		{"across year boundary", date(2026, time.November, 20), 2, date(2027, time.January, 31)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MonthEndOffset(tc.in, tc.n); !got.Equal(tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDaysBetweenRoundsUpPartialDays(t *testing.T) {
	// Arrange
	from := time.Date(2026, time.August, 29, 18, 0, 0, 0, time.Local)
	to := date(2026, time.September, 1)

	// Act
	got := DaysBetween(from, to)

	// Assert: 2 days and 6 hours counts as 3 days, like a countdown.
	if got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestFormatRelative(t *testing.T) {
	today := date(2026, time.August, 29)

	cases := []struct {
		name string
		d    time.Time
		want string
	}{
		{"today", today, "Today"},
		{"tomorrow", date(2026, time.August, 30), "Tomorrow"},
		{"in three days", date(2026, time.September, 1), "in 3 days"},
		{"a week out is absolute", date(2026, time.September, 5), "9/5/2026"},
		{"overdue", date(2026, time.August, 27), "2 days ago (OVERDUE)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRelative(tc.d, today); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
