package calendar_test

import (
	"testing"
	"time"

	"github.com/sourabhverman/people-hub-pro/internal/shared/calendar"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayCount(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		n, err := calendar.DayCount(date(2024, 12, 20), date(2024, 12, 20))
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("inclusive range", func(t *testing.T) {
		n, err := calendar.DayCount(date(2024, 12, 20), date(2024, 12, 22))
		assert.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := calendar.DayCount(date(2024, 12, 22), date(2024, 12, 20))
		assert.ErrorIs(t, err, calendar.ErrInvalidRange)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		start := time.Date(2024, 12, 20, 23, 30, 0, 0, time.UTC)
		end := time.Date(2024, 12, 21, 0, 15, 0, 0, time.UTC)
		n, err := calendar.DayCount(start, end)
		assert.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestCalendar_WorkingDays(t *testing.T) {
	// 2024-12-25 (Wednesday) is a holiday; 21st/22nd fall on a weekend.
	cal := calendar.New(
		[]time.Weekday{time.Saturday, time.Sunday},
		[]time.Time{date(2024, 12, 25)},
	)

	t.Run("skips weekend and holiday", func(t *testing.T) {
		n, err := cal.WorkingDays(date(2024, 12, 20), date(2024, 12, 26))
		assert.NoError(t, err)
		// Fri 20, Mon 23, Tue 24, Thu 26
		assert.Equal(t, 4, n)
	})

	t.Run("range of only non-working days", func(t *testing.T) {
		n, err := cal.WorkingDays(date(2024, 12, 21), date(2024, 12, 22))
		assert.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := cal.WorkingDays(date(2024, 12, 26), date(2024, 12, 20))
		assert.ErrorIs(t, err, calendar.ErrInvalidRange)
	})
}

func TestMerge(t *testing.T) {
	dec := calendar.New(
		[]time.Weekday{time.Saturday, time.Sunday},
		[]time.Time{date(2024, 12, 25)},
	)
	jan := calendar.New(
		[]time.Weekday{time.Saturday, time.Sunday},
		[]time.Time{date(2025, 1, 1)},
	)

	merged := calendar.Merge(dec, jan)

	assert.True(t, merged.IsHoliday(date(2024, 12, 25)))
	assert.True(t, merged.IsHoliday(date(2025, 1, 1)))
	assert.True(t, merged.IsWeekend(date(2024, 12, 28)))

	// Mon Dec 30 through Fri Jan 3, minus New Year's Day.
	n, err := merged.WorkingDays(date(2024, 12, 30), date(2025, 1, 3))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCalendar_Lookups(t *testing.T) {
	cal := calendar.New(
		[]time.Weekday{time.Saturday, time.Sunday},
		[]time.Time{date(2025, 1, 26)},
	)

	assert.True(t, cal.IsWeekend(date(2024, 12, 21)))
	assert.False(t, cal.IsWeekend(date(2024, 12, 23)))
	assert.True(t, cal.IsHoliday(date(2025, 1, 26)))
	assert.False(t, cal.IsHoliday(date(2025, 1, 27)))
}
