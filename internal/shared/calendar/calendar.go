package calendar

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when end precedes start.
var ErrInvalidRange = errors.New("calendar: end date before start date")

const dayKeyFormat = "2006-01-02"

// DayCount returns the inclusive number of calendar days between start and
// end. Times of day are ignored; leave is whole-day granularity.
func DayCount(start, end time.Time) (int, error) {
	s := truncate(start)
	e := truncate(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// Calendar answers working-day questions against externally supplied weekend
// and holiday configuration. It holds no mutable state.
type Calendar struct {
	weekend  map[time.Weekday]struct{}
	holidays map[string]struct{}
}

func New(weekend []time.Weekday, holidays []time.Time) *Calendar {
	c := &Calendar{
		weekend:  make(map[time.Weekday]struct{}, len(weekend)),
		holidays: make(map[string]struct{}, len(holidays)),
	}
	for _, d := range weekend {
		c.weekend[d] = struct{}{}
	}
	for _, h := range holidays {
		c.holidays[truncate(h).Format(dayKeyFormat)] = struct{}{}
	}
	return c
}

// Merge returns a calendar holding the union of both calendars' weekends and
// holidays. Useful when a date range spans calendars configured per year.
func Merge(a, b *Calendar) *Calendar {
	c := &Calendar{
		weekend:  make(map[time.Weekday]struct{}, len(a.weekend)+len(b.weekend)),
		holidays: make(map[string]struct{}, len(a.holidays)+len(b.holidays)),
	}
	for _, src := range []*Calendar{a, b} {
		for d := range src.weekend {
			c.weekend[d] = struct{}{}
		}
		for h := range src.holidays {
			c.holidays[h] = struct{}{}
		}
	}
	return c
}

// Default uses a Saturday/Sunday weekend and no holidays.
func Default() *Calendar {
	return New([]time.Weekday{time.Saturday, time.Sunday}, nil)
}

func (c *Calendar) IsWeekend(d time.Time) bool {
	_, ok := c.weekend[d.Weekday()]
	return ok
}

func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.holidays[truncate(d).Format(dayKeyFormat)]
	return ok
}

// WorkingDays counts days in [start, end] that are neither weekend nor
// holiday.
func (c *Calendar) WorkingDays(start, end time.Time) (int, error) {
	s := truncate(start)
	e := truncate(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}

	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if c.IsWeekend(d) || c.IsHoliday(d) {
			continue
		}
		count++
	}
	return count, nil
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
