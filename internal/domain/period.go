package domain

import (
	"time"

	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

// Period is an immutable inclusive calendar date range a course runs in.
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod builds a period from two calendar dates. Time-of-day components
// are discarded.
func NewPeriod(start, end time.Time) (Period, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if start.After(end) {
		return Period{}, appErrors.Clone(appErrors.ErrValidation, "Start date cannot be after the end date.")
	}
	return Period{start: start, end: end}, nil
}

// Start returns the first date of the period.
func (p Period) Start() time.Time {
	return p.start
}

// End returns the last date of the period.
func (p Period) End() time.Time {
	return p.end
}

// OverlapsWith reports whether two periods share at least one date.
// Bounds are inclusive on both sides.
func (p Period) OverlapsWith(other Period) bool {
	return !p.start.After(other.end) && !p.end.Before(other.start)
}

// ContainsWeekday reports whether at least one date within the period falls
// on the given weekday.
func (p Period) ContainsWeekday(day time.Weekday) bool {
	if p.end.Sub(p.start) >= 6*24*time.Hour {
		return true
	}
	for d := p.start; !d.After(p.end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == day {
			return true
		}
	}
	return false
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
