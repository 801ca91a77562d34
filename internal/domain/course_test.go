package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

func draftCourse(t *testing.T, title string, start, end time.Time) *Course {
	t.Helper()
	course, err := NewCourse(title, mustPeriod(t, start, end))
	require.NoError(t, err)
	return course
}

func TestNewCourseValidation(t *testing.T) {
	_, err := NewCourse("  ", mustPeriod(t, date(2025, time.May, 1), date(2025, time.June, 1)))
	require.Error(t, err)
	assert.Equal(t, "Title cannot be empty.", err.Error())
}

func TestCourseStartsAsDraft(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	assert.False(t, course.IsConfirmed())
	assert.Nil(t, course.AssignedCoach())
	assert.Empty(t, course.RequiredSkills())
	assert.Empty(t, course.Schedule())
}

func TestCourseConfirmRequiresLessons(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))

	err := course.Confirm()
	require.Error(t, err)
	assert.Equal(t, "Cannot confirm course without any lessons.", err.Error())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict.Code))

	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.Confirm())
	assert.True(t, course.IsConfirmed())
}

func TestCourseConfirmTwiceFails(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.Confirm())

	err := course.Confirm()
	require.Error(t, err)
	assert.Equal(t, "Course is already confirmed.", err.Error())
}

func TestCourseFrozenAfterConfirmation(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddRequiredSkill("Physics"))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.Confirm())

	const frozen = "Cannot modify course after it has been confirmed."

	err := course.AddRequiredSkill("Chemistry")
	require.Error(t, err)
	assert.Equal(t, frozen, err.Error())

	err = course.RemoveRequiredSkill("Physics")
	require.Error(t, err)
	assert.Equal(t, frozen, err.Error())

	err = course.UpdateRequiredSkills([]string{"Chemistry"})
	require.Error(t, err)
	assert.Equal(t, frozen, err.Error())

	err = course.AddTimeSlot(mustSlot(t, time.Tuesday, 10, 12))
	require.Error(t, err)
	assert.Equal(t, frozen, err.Error())

	err = course.RemoveTimeSlot(mustSlot(t, time.Monday, 10, 12))
	require.Error(t, err)
	assert.Equal(t, frozen, err.Error())

	err = course.UpdateTimeSlots([]TimeSlot{mustSlot(t, time.Tuesday, 10, 12)})
	require.Error(t, err)
	assert.Equal(t, frozen, err.Error())
}

func TestCourseTitleStaysMutableAfterConfirmation(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.Confirm())

	require.NoError(t, course.UpdateTitle("Advanced Math"))
	assert.Equal(t, "Advanced Math", course.Title())
}

func TestCourseRequiredSkillsCaseInsensitive(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddRequiredSkill("Physics"))

	err := course.AddRequiredSkill("PHYSICS")
	require.Error(t, err)
	assert.Equal(t, "Skill already added", err.Error())
}

func TestCourseAddTimeSlotOutsidePeriod(t *testing.T) {
	// 2025-05-01 is a Thursday; a single-day period has no Friday.
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.May, 1))

	err := course.AddTimeSlot(mustSlot(t, time.Friday, 10, 12))
	require.Error(t, err)
	assert.Equal(t, "Cannot add a time slot for a day that is not included in the course duration.", err.Error())

	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Thursday, 10, 12)))
}

func TestCourseRemoveTimeSlotByValue(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Wednesday, 13, 15)))

	require.NoError(t, course.RemoveTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.Len(t, course.Schedule(), 1)
	assert.Equal(t, time.Wednesday, course.Schedule()[0].Day())
}

func TestCourseAssignCoachRequiresConfirmation(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))

	coach, err := NewCoach("James Bond", "james@example.com")
	require.NoError(t, err)

	err = course.AssignCoach(coach)
	require.Error(t, err)
	assert.Equal(t, "Course must be confirmed before assigning a coach.", err.Error())
}

func TestCourseAssignCoachRequiresSkills(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddRequiredSkill("Physics"))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.Confirm())

	coach, err := NewCoach("James Bond", "james@example.com")
	require.NoError(t, err)

	err = course.AssignCoach(coach)
	require.Error(t, err)
	assert.Equal(t, "Coach does not have all required skills.", err.Error())
	assert.Nil(t, course.AssignedCoach())
}

func TestCourseAssignCoachSuccess(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddRequiredSkill("Physics"))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.Confirm())

	coach, err := NewCoach("James Bond", "james@example.com")
	require.NoError(t, err)
	require.NoError(t, coach.AddSkill("physics"))

	require.NoError(t, course.AssignCoach(coach))
	assert.Same(t, coach, course.AssignedCoach())
	require.Len(t, coach.AssignedCourses(), 1)
	assert.Same(t, course, coach.AssignedCourses()[0])
}

func TestCoachAssignSameCourseTwice(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddRequiredSkill("Physics"))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.Confirm())

	coach, err := NewCoach("James Bond", "james@example.com")
	require.NoError(t, err)
	require.NoError(t, coach.AddSkill("Physics"))
	require.NoError(t, course.AssignCoach(coach))

	err = coach.AssignCourse(course)
	require.Error(t, err)
	assert.Equal(t, "Course is already assigned", err.Error())
}

func TestCoachDoubleBookingRejected(t *testing.T) {
	courseA := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, courseA.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, courseA.Confirm())

	courseB := draftCourse(t, "Dancing", date(2025, time.May, 10), date(2025, time.June, 10))
	require.NoError(t, courseB.AddTimeSlot(mustSlot(t, time.Monday, 11, 13)))
	require.NoError(t, courseB.Confirm())

	coach, err := NewCoach("James Bond", "james@example.com")
	require.NoError(t, err)
	require.NoError(t, courseA.AssignCoach(coach))

	err = courseB.AssignCoach(coach)
	require.Error(t, err)
	assert.Equal(t, "Lesson time is overlapping", err.Error())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict.Code))
	assert.Nil(t, courseB.AssignedCoach())
	assert.Len(t, coach.AssignedCourses(), 1)
}

func TestCoachSameWeekdayDisjointPeriodsAllowed(t *testing.T) {
	courseA := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, courseA.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, courseA.Confirm())

	// Identical weekday and hours, but the periods never share a date.
	courseC := draftCourse(t, "Dancing", date(2025, time.July, 1), date(2025, time.July, 31))
	require.NoError(t, courseC.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, courseC.Confirm())

	coach, err := NewCoach("James Bond", "james@example.com")
	require.NoError(t, err)
	require.NoError(t, courseA.AssignCoach(coach))

	require.NoError(t, courseC.AssignCoach(coach))
	assert.Len(t, coach.AssignedCourses(), 2)
}

func TestCoachTouchingConcreteSlotsAllowed(t *testing.T) {
	// The concrete-date check is strict: back-to-back lessons do not collide
	// even though TimeSlot.OverlapsWith treats them as overlapping.
	courseA := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, courseA.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, courseA.Confirm())

	courseB := draftCourse(t, "Dancing", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, courseB.AddTimeSlot(mustSlot(t, time.Monday, 12, 14)))
	require.NoError(t, courseB.Confirm())

	coach, err := NewCoach("James Bond", "james@example.com")
	require.NoError(t, err)
	require.NoError(t, courseA.AssignCoach(coach))
	require.NoError(t, courseB.AssignCoach(coach))
}

func TestAssignmentScenario(t *testing.T) {
	course := draftCourse(t, "Math", date(2025, time.May, 1), date(2025, time.June, 1))
	require.NoError(t, course.AddRequiredSkill("Physics"))
	require.NoError(t, course.AddTimeSlot(mustSlot(t, time.Monday, 10, 12)))
	require.NoError(t, course.Confirm())

	coach, err := NewCoach("james bond", "james@example.com")
	require.NoError(t, err)
	require.NoError(t, coach.AddSkill("Physics"))

	require.NoError(t, course.AssignCoach(coach))
	assert.Equal(t, "James Bond", course.AssignedCoach().Name())

	err = coach.AssignCourse(course)
	require.Error(t, err)
	assert.Equal(t, "Course is already assigned", err.Error())
}

func TestRestoreCourseAndAssignment(t *testing.T) {
	period := mustPeriod(t, date(2025, time.May, 1), date(2025, time.June, 1))
	course := RestoreCourse("crs-1", "Math", period, []string{"Physics"}, []TimeSlot{mustSlot(t, time.Monday, 10, 12)}, true)
	coach := RestoreCoach("ch-1", "James Bond", "james@example.com", []string{"Physics"})
	coach.RestoreAssignment(course)

	assert.Equal(t, "crs-1", course.ID())
	assert.True(t, course.IsConfirmed())
	assert.Same(t, coach, course.AssignedCoach())
	require.Len(t, coach.AssignedCourses(), 1)

	// A restored confirmed course keeps its guards.
	err := course.AddTimeSlot(mustSlot(t, time.Tuesday, 10, 12))
	require.Error(t, err)
	assert.Equal(t, "Cannot modify course after it has been confirmed.", err.Error())
}
