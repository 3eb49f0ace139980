package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDayUTC(t *testing.T) {
	in := time.Date(2024, 3, 15, 18, 42, 7, 123, time.UTC)
	got := StartOfDayUTC(in)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestStartOfDayUTC_ConvertsNonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 03:00 on the 16th in UTC+8 is still the 15th in UTC.
	in := time.Date(2024, 3, 16, 3, 0, 0, 0, loc)
	got := StartOfDayUTC(in)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestStartOfMonthUTC(t *testing.T) {
	in := time.Date(2024, 3, 15, 18, 42, 7, 0, time.UTC)
	got := StartOfMonthUTC(in)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestEndOfMonthUTC_LeapFebruary(t *testing.T) {
	in := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	got := EndOfMonthUTC(in)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC), got)
}

func TestEndOfDayUTC(t *testing.T) {
	in := time.Date(2024, 12, 31, 1, 0, 0, 0, time.UTC)
	got := EndOfDayUTC(in)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 999999999, time.UTC), got)
}

func TestAddMonthsUTC_MonthlyRenewal(t *testing.T) {
	start := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	got := AddMonthsUTC(start, 1)
	// Go normalizes Jan 31 + 1 month to Mar 2 (non-leap) / Mar 2 or Mar 3.
	assert.Equal(t, start.AddDate(0, 1, 0), got)
}

func TestAddYearsUTC_YearlyRenewal(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got := AddYearsUTC(start, 1)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateUTC(t *testing.T) {
	got, err := ParseDateUTC("2024-05-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateUTC_Invalid(t *testing.T) {
	_, err := ParseDateUTC("20-05-2024")
	require.Error(t, err)
}
