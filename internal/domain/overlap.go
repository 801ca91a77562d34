package domain

import "time"

// ConcreteSlot is a weekly slot resolved against one calendar date inside a
// course period, the unit of exact double-booking comparison.
type ConcreteSlot struct {
	Date      time.Time `json:"date"`
	StartHour int       `json:"start_hour"`
	EndHour   int       `json:"end_hour"`
}

// overlaps uses a strict interval test: slots that merely touch (one ends at
// the hour the other starts) do not collide on a concrete date. This is
// intentionally tighter than TimeSlot.OverlapsWith.
func (s ConcreteSlot) overlaps(other ConcreteSlot) bool {
	if !s.Date.Equal(other.Date) {
		return false
	}
	return s.StartHour < other.EndHour && s.EndHour > other.StartHour
}

// ConcreteSlots expands the weekly schedule into dated slots: every calendar
// date within the period matching a slot's weekday yields one entry.
func (c *Course) ConcreteSlots() []ConcreteSlot {
	var out []ConcreteSlot
	for _, slot := range c.schedule {
		date := c.period.start
		for date.Weekday() != slot.Day() {
			date = date.AddDate(0, 0, 1)
		}
		for !date.After(c.period.end) {
			out = append(out, ConcreteSlot{Date: date, StartHour: slot.StartHour(), EndHour: slot.EndHour()})
			date = date.AddDate(0, 0, 7)
		}
	}
	return out
}

// conflictsWith reports whether two courses can ever co-occur in time.
// Non-overlapping periods are rejected cheaply; otherwise both schedules are
// expanded to concrete dates so that courses sharing a weekday pattern but
// never a calendar date do not count as colliding.
func (c *Course) conflictsWith(other *Course) bool {
	if !c.period.OverlapsWith(other.period) {
		return false
	}
	candidate := c.ConcreteSlots()
	existing := other.ConcreteSlots()
	for _, a := range candidate {
		for _, b := range existing {
			if a.overlaps(b) {
				return true
			}
		}
	}
	return false
}
