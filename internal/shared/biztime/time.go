// Package biztime provides utilities for usage-window boundary calculations.
// All storage, transport, and window math use UTC. Quota windows (calendar
// month for songs and AI generations, calendar day for practice minutes) are
// anchored at UTC boundaries so decisions are deterministic regardless of the
// server's local timezone.
package biztime

import (
	"fmt"
	"time"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns midnight UTC of the day containing t.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC returns the last instant (23:59:59.999999999) of the UTC day containing t.
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).Add(24*time.Hour - time.Nanosecond)
}

// StartOfMonthUTC returns the first instant of the UTC calendar month containing t.
func StartOfMonthUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonthUTC returns the last instant of the UTC calendar month containing t.
func EndOfMonthUTC(t time.Time) time.Time {
	u := t.UTC()
	nextMonth := time.Date(u.Year(), u.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return nextMonth.Add(-time.Nanosecond)
}

// AddMonthsUTC adds n calendar months in UTC. Used for paid subscription
// end-date computation (start + 1 month / start + 12 months).
func AddMonthsUTC(t time.Time, n int) time.Time {
	return t.UTC().AddDate(0, n, 0)
}

// AddYearsUTC adds n calendar years in UTC.
func AddYearsUTC(t time.Time, n int) time.Time {
	return t.UTC().AddDate(n, 0, 0)
}

// ParseDateUTC parses a date string (YYYY-MM-DD) as UTC midnight.
func ParseDateUTC(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}
