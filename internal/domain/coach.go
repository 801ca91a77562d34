package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

var titleCaser = cases.Title(language.Und)

// Coach is an instructor with a skill set and the courses currently
// assigned to them. The assigned list is the reverse side of the
// Course→Coach link; Course.AssignCoach is the only writer of both sides.
type Coach struct {
	id       string
	name     string
	email    string
	skills   *SkillSet
	assigned []*Course
}

// NewCoach builds a coach, normalising the display name to title case.
func NewCoach(name, email string) (*Coach, error) {
	c := &Coach{skills: NewSkillSet()}
	if err := c.UpdateDetails(name, email); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCoach rebuilds a stored coach without re-running lifecycle guards.
// Identity and skills come from the repository layer as persisted.
func RestoreCoach(id, name, email string, skills []string) *Coach {
	set := NewSkillSet()
	set.items = append(set.items, skills...)
	return &Coach{id: id, name: name, email: email, skills: set}
}

// RestoreAssignment relinks a stored course to the coach, both sides,
// without validation. Only for repository rehydration.
func (c *Coach) RestoreAssignment(course *Course) {
	c.assigned = append(c.assigned, course)
	course.coach = c
}

// ID returns the externally assigned identity, empty until persisted.
func (c *Coach) ID() string {
	return c.id
}

// SetID stamps the storage-assigned identity onto the coach.
func (c *Coach) SetID(id string) {
	c.id = id
}

// Name returns the title-cased display name.
func (c *Coach) Name() string {
	return c.name
}

// Email returns the coach email.
func (c *Coach) Email() string {
	return c.email
}

// UpdateDetails replaces the display name and email, re-normalising the name.
func (c *Coach) UpdateDetails(name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Name cannot be empty.")
	}
	if strings.TrimSpace(email) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Email cannot be empty.")
	}
	c.name = titleCaser.String(name)
	c.email = email
	return nil
}

// AddSkill inserts a skill, failing on a case-insensitive duplicate.
func (c *Coach) AddSkill(skill string) error {
	return c.skills.Add(skill)
}

// RemoveSkill drops a skill; absent skills are ignored.
func (c *Coach) RemoveSkill(skill string) {
	c.skills.Remove(skill)
}

// UpdateSkills replaces the entire skill set.
func (c *Coach) UpdateSkills(skills []string) error {
	return c.skills.Replace(skills)
}

// Skills returns a copy of the coach's skills.
func (c *Coach) Skills() []string {
	return c.skills.Values()
}

// HasAllSkills reports whether the coach covers every required skill.
func (c *Coach) HasAllSkills(required []string) bool {
	return c.skills.ContainsAll(required)
}

// AssignedCourses returns a read-only view of the coach's courses.
func (c *Coach) AssignedCourses() []*Course {
	out := make([]*Course, len(c.assigned))
	copy(out, c.assigned)
	return out
}

// AssignCourse validates that the course is not already on the coach's list
// and that none of its lessons collide with an existing assignment, then
// appends it. The forward Course→Coach reference is set by the caller
// (Course.AssignCoach), which owns the relationship.
func (c *Coach) AssignCourse(course *Course) error {
	for _, existing := range c.assigned {
		if existing == course {
			return appErrors.Clone(appErrors.ErrConflict, "Course is already assigned")
		}
	}
	for _, existing := range c.assigned {
		if course.conflictsWith(existing) {
			return appErrors.Clone(appErrors.ErrConflict, "Lesson time is overlapping")
		}
	}
	c.assigned = append(c.assigned, course)
	return nil
}
