package leave

import (
	"time"

	leaveerrors "github.com/sourabhverman/people-hub-pro/internal/leave/errors"
	"github.com/sourabhverman/people-hub-pro/internal/shared/calendar"
)

// ValidationInput carries everything a submission check needs so the check
// itself stays free of repository and clock access.
type ValidationInput struct {
	StartDate time.Time
	EndDate   time.Time
	// WorkdaysOnly switches day counting from calendar days to working days
	// on Calendar.
	WorkdaysOnly bool
	Calendar     *calendar.Calendar
	// Existing holds the employee's pending and approved requests; terminal
	// requests never block a new one.
	Existing []Leave
}

// Validate checks a submission and returns the number of days it would
// consume. Checks run in a fixed order so a request failing several rules
// always reports the same error: range, duration, overlap.
func Validate(in ValidationInput) (int, error) {
	days, err := calendar.DayCount(in.StartDate, in.EndDate)
	if err != nil {
		return 0, leaveerrors.ErrInvalidDateRange
	}

	if in.WorkdaysOnly {
		cal := in.Calendar
		if cal == nil {
			cal = calendar.Default()
		}
		days, err = cal.WorkingDays(in.StartDate, in.EndDate)
		if err != nil {
			return 0, leaveerrors.ErrInvalidDateRange
		}
	}

	if days == 0 {
		return 0, leaveerrors.ErrZeroDurationRequest
	}

	for _, existing := range in.Existing {
		if overlaps(in.StartDate, in.EndDate, existing.StartDate, existing.EndDate) {
			return 0, leaveerrors.ErrOverlappingRequest
		}
	}

	return days, nil
}

// overlaps reports whether the inclusive date ranges share at least one day.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !dayAfter(aStart, bEnd) && !dayAfter(bStart, aEnd)
}

func dayAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).
		After(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC))
}
