package domain

import (
	"strings"

	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

// Course is the aggregate holding a run period, required skills, the weekly
// lesson schedule and the confirmation lifecycle:
//
//	draft -> confirmed -> assigned
//
// Skills and schedule are mutable only while the course is a draft.
type Course struct {
	id        string
	title     string
	period    Period
	skills    *SkillSet
	schedule  []TimeSlot
	confirmed bool
	coach     *Coach
}

// NewCourse builds a draft course with an empty schedule and skill set.
func NewCourse(title string, period Period) (*Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Title cannot be empty.")
	}
	return &Course{title: title, period: period, skills: NewSkillSet()}, nil
}

// RestoreCourse rebuilds a stored course without lifecycle checks. The
// assigned coach, if any, is relinked via Coach.RestoreAssignment.
func RestoreCourse(id, title string, period Period, skills []string, schedule []TimeSlot, confirmed bool) *Course {
	set := NewSkillSet()
	set.items = append(set.items, skills...)
	return &Course{
		id:        id,
		title:     title,
		period:    period,
		skills:    set,
		schedule:  append([]TimeSlot(nil), schedule...),
		confirmed: confirmed,
	}
}

// ID returns the externally assigned identity, empty until persisted.
func (c *Course) ID() string {
	return c.id
}

// SetID stamps the storage-assigned identity onto the course.
func (c *Course) SetID(id string) {
	c.id = id
}

// Title returns the course title.
func (c *Course) Title() string {
	return c.title
}

// Period returns the calendar range the course runs in.
func (c *Course) Period() Period {
	return c.period
}

// IsConfirmed reports whether the course left the draft state.
func (c *Course) IsConfirmed() bool {
	return c.confirmed
}

// AssignedCoach returns the assigned coach, nil while unassigned.
func (c *Course) AssignedCoach() *Coach {
	return c.coach
}

// RequiredSkills returns a copy of the required skills.
func (c *Course) RequiredSkills() []string {
	return c.skills.Values()
}

// Schedule returns a copy of the weekly lesson slots.
func (c *Course) Schedule() []TimeSlot {
	out := make([]TimeSlot, len(c.schedule))
	copy(out, c.schedule)
	return out
}

// UpdateTitle renames the course. Renaming stays allowed after confirmation.
func (c *Course) UpdateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Title cannot be empty.")
	}
	c.title = title
	return nil
}

// AddRequiredSkill adds a skill while the course is a draft.
func (c *Course) AddRequiredSkill(skill string) error {
	if err := c.ensureDraft(); err != nil {
		return err
	}
	return c.skills.Add(skill)
}

// RemoveRequiredSkill drops a skill while the course is a draft.
func (c *Course) RemoveRequiredSkill(skill string) error {
	if err := c.ensureDraft(); err != nil {
		return err
	}
	c.skills.Remove(skill)
	return nil
}

// UpdateRequiredSkills replaces the skill set while the course is a draft.
func (c *Course) UpdateRequiredSkills(skills []string) error {
	if err := c.ensureDraft(); err != nil {
		return err
	}
	return c.skills.Replace(skills)
}

// AddTimeSlot appends a lesson slot. The slot's weekday must occur on at
// least one concrete date inside the course period.
func (c *Course) AddTimeSlot(slot TimeSlot) error {
	if err := c.ensureDraft(); err != nil {
		return err
	}
	if !c.period.ContainsWeekday(slot.Day()) {
		return appErrors.Clone(appErrors.ErrConflict, "Cannot add a time slot for a day that is not included in the course duration.")
	}
	c.schedule = append(c.schedule, slot)
	return nil
}

// RemoveTimeSlot drops the first slot equal to the given one.
func (c *Course) RemoveTimeSlot(slot TimeSlot) error {
	if err := c.ensureDraft(); err != nil {
		return err
	}
	for i, existing := range c.schedule {
		if existing.Equal(slot) {
			c.schedule = append(c.schedule[:i], c.schedule[i+1:]...)
			return nil
		}
	}
	return nil
}

// UpdateTimeSlots replaces the whole schedule while the course is a draft.
func (c *Course) UpdateTimeSlots(slots []TimeSlot) error {
	if err := c.ensureDraft(); err != nil {
		return err
	}
	for _, slot := range slots {
		if !c.period.ContainsWeekday(slot.Day()) {
			return appErrors.Clone(appErrors.ErrConflict, "Cannot add a time slot for a day that is not included in the course duration.")
		}
	}
	c.schedule = append([]TimeSlot(nil), slots...)
	return nil
}

// Confirm moves the course out of the draft state. A course needs at least
// one lesson; confirming twice is rejected.
func (c *Course) Confirm() error {
	if c.confirmed {
		return appErrors.Clone(appErrors.ErrConflict, "Course is already confirmed.")
	}
	if len(c.schedule) == 0 {
		return appErrors.Clone(appErrors.ErrConflict, "Cannot confirm course without any lessons.")
	}
	c.confirmed = true
	return nil
}

// AssignCoach links a coach to a confirmed course. The coach must cover all
// required skills and must not be double-booked on any concrete lesson date.
// This method owns both sides of the relationship: Coach.AssignCourse only
// validates and appends the reverse reference.
func (c *Course) AssignCoach(coach *Coach) error {
	if !c.confirmed {
		return appErrors.Clone(appErrors.ErrConflict, "Course must be confirmed before assigning a coach.")
	}
	if !coach.HasAllSkills(c.skills.Values()) {
		return appErrors.Clone(appErrors.ErrConflict, "Coach does not have all required skills.")
	}
	if err := coach.AssignCourse(c); err != nil {
		return err
	}
	c.coach = coach
	return nil
}

func (c *Course) ensureDraft() error {
	if c.confirmed {
		return appErrors.Clone(appErrors.ErrConflict, "Cannot modify course after it has been confirmed.")
	}
	return nil
}
