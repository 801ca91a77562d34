package domain

import (
	"time"

	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

// Working-hour bounds for weekly lessons.
const (
	WorkdayStartHour = 9
	WorkdayEndHour   = 17
)

// TimeSlot is an immutable weekly recurring lesson block: a weekday plus a
// start and end hour inside working hours.
type TimeSlot struct {
	day   time.Weekday
	start int
	end   int
}

// NewTimeSlot validates and builds a time slot.
func NewTimeSlot(day time.Weekday, start, end int) (TimeSlot, error) {
	if start < WorkdayStartHour {
		return TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, "Start hour must be at 9 or later.")
	}
	if end > WorkdayEndHour {
		return TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, "End hour must be at 17 or earlier.")
	}
	if end < start {
		return TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, "End hour cannot be before the start hour.")
	}
	if end-start < 1 {
		return TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, "A time slot must last at least one hour.")
	}
	return TimeSlot{day: day, start: start, end: end}, nil
}

// Day returns the weekday the slot recurs on.
func (t TimeSlot) Day() time.Weekday {
	return t.day
}

// StartHour returns the inclusive start hour.
func (t TimeSlot) StartHour() int {
	return t.start
}

// EndHour returns the end hour.
func (t TimeSlot) EndHour() int {
	return t.end
}

// Duration returns the slot length in hours.
func (t TimeSlot) Duration() int {
	return t.end - t.start
}

// OverlapsWith reports whether two weekly slots collide. Slots on different
// days never overlap; on the same day the comparison is closed-interval, so a
// slot ending at 12 overlaps one starting at 12.
func (t TimeSlot) OverlapsWith(other TimeSlot) bool {
	if t.day != other.day {
		return false
	}
	return t.start <= other.end && t.end >= other.start
}

// Equal reports value equality on day, start and end.
func (t TimeSlot) Equal(other TimeSlot) bool {
	return t.day == other.day && t.start == other.start && t.end == other.end
}
