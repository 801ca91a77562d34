package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coachdesk/coachdesk-api/internal/domain"
	"github.com/coachdesk/coachdesk-api/internal/models"
	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ListByCoach(ctx context.Context, coachID string) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	UpdateTitle(ctx context.Context, id, title string) error
	ReplaceSkills(ctx context.Context, courseID string, skills []string) error
	ReplaceSlots(ctx context.Context, courseID string, slots []models.CourseSlot) error
	SetConfirmed(ctx context.Context, id string, confirmed bool) error
	SetCoach(ctx context.Context, id, coachID string) error
}

type coachReader interface {
	FindByID(ctx context.Context, id string) (*models.Coach, error)
}

type timetableInvalidator interface {
	Invalidate(ctx context.Context, coachID string) error
}

// CreateCourseRequest describes payload for creating a course.
type CreateCourseRequest struct {
	Title     string    `json:"title" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Skills    []string  `json:"skills" validate:"omitempty,dive,required"`
}

// UpdateCourseTitleRequest renames a course.
type UpdateCourseTitleRequest struct {
	Title string `json:"title" validate:"required"`
}

// TimeSlotRequest describes one weekly lesson slot.
type TimeSlotRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartHour int    `json:"start_hour" validate:"required"`
	EndHour   int    `json:"end_hour" validate:"required"`
}

// UpdateTimeSlotsRequest replaces a course's whole schedule.
type UpdateTimeSlotsRequest struct {
	Slots []TimeSlotRequest `json:"slots" validate:"required,dive"`
}

// AssignCoachRequest links a coach to a confirmed course.
type AssignCoachRequest struct {
	CoachID string `json:"coach_id" validate:"required"`
}

// CourseService coordinates course lifecycle operations around the domain
// aggregate: every mutation is rehydrated, run through the entity's guards
// and persisted back.
type CourseService struct {
	courses   courseRepository
	coaches   coachReader
	cache     timetableInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService instantiates CourseService. The cache may be nil.
func NewCourseService(courses courseRepository, coaches coachReader, cache timetableInvalidator, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, coaches: coaches, cache: cache, validator: validate, logger: logger}
}

// List returns courses with pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return courses, pagination, nil
}

// Get returns a course aggregate by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create builds a draft course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	period, err := domain.NewPeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	course, err := domain.NewCourse(req.Title, period)
	if err != nil {
		return nil, err
	}
	for _, skill := range req.Skills {
		if err := course.AddRequiredSkill(skill); err != nil {
			return nil, err
		}
	}

	record := &models.Course{
		Title:          course.Title(),
		StartDate:      period.Start(),
		EndDate:        period.End(),
		RequiredSkills: course.RequiredSkills(),
	}
	if err := s.courses.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return record, nil
}

// UpdateTitle renames a course. Renaming stays allowed after confirmation.
func (s *CourseService) UpdateTitle(ctx context.Context, id string, req UpdateCourseTitleRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid title payload")
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := rehydrateCourse(record)
	if err != nil {
		return nil, err
	}
	if err := course.UpdateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := s.courses.UpdateTitle(ctx, id, course.Title()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rename course")
	}
	record.Title = course.Title()
	return record, nil
}

// AddSkill adds one required skill to a draft course.
func (s *CourseService) AddSkill(ctx context.Context, id string, req SkillRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid skill payload")
	}
	return s.mutateSkills(ctx, id, func(course *domain.Course) error {
		return course.AddRequiredSkill(req.Skill)
	})
}

// RemoveSkill drops one required skill from a draft course.
func (s *CourseService) RemoveSkill(ctx context.Context, id, skill string) (*models.Course, error) {
	return s.mutateSkills(ctx, id, func(course *domain.Course) error {
		return course.RemoveRequiredSkill(skill)
	})
}

// UpdateSkills replaces the required skill set of a draft course.
func (s *CourseService) UpdateSkills(ctx context.Context, id string, req UpdateSkillsRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid skills payload")
	}
	return s.mutateSkills(ctx, id, func(course *domain.Course) error {
		return course.UpdateRequiredSkills(req.Skills)
	})
}

// AddTimeSlot appends one weekly lesson to a draft course.
func (s *CourseService) AddTimeSlot(ctx context.Context, id string, req TimeSlotRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	slot, err := slotFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.mutateSlots(ctx, id, func(course *domain.Course) error {
		return course.AddTimeSlot(slot)
	})
}

// RemoveTimeSlot drops the matching weekly lesson from a draft course.
func (s *CourseService) RemoveTimeSlot(ctx context.Context, id string, req TimeSlotRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	slot, err := slotFromRequest(req)
	if err != nil {
		return nil, err
	}
	return s.mutateSlots(ctx, id, func(course *domain.Course) error {
		return course.RemoveTimeSlot(slot)
	})
}

// UpdateTimeSlots replaces the whole schedule of a draft course.
func (s *CourseService) UpdateTimeSlots(ctx context.Context, id string, req UpdateTimeSlotsRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slots payload")
	}
	slots := make([]domain.TimeSlot, 0, len(req.Slots))
	for _, item := range req.Slots {
		slot, err := slotFromRequest(item)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return s.mutateSlots(ctx, id, func(course *domain.Course) error {
		return course.UpdateTimeSlots(slots)
	})
}

// Confirm moves a course out of the draft state.
func (s *CourseService) Confirm(ctx context.Context, id string) (*models.Course, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := rehydrateCourse(record)
	if err != nil {
		return nil, err
	}
	if err := course.Confirm(); err != nil {
		return nil, err
	}
	if err := s.courses.SetConfirmed(ctx, id, true); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to confirm course")
	}
	record.Confirmed = true
	return record, nil
}

// AssignCoach runs the full assignment check: confirmation, skill coverage
// and double-booking against every course already on the coach's roster,
// then persists the link and drops the coach's cached timetable.
func (s *CourseService) AssignCoach(ctx context.Context, id string, req AssignCoachRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.CoachID != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Course is already assigned")
	}

	coachRecord, err := s.coaches.FindByID(ctx, req.CoachID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "coach not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load coach")
	}

	assigned, err := s.courses.ListByCoach(ctx, req.CoachID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load coach courses")
	}

	coach, err := rehydrateCoach(coachRecord, assigned)
	if err != nil {
		return nil, err
	}
	course, err := rehydrateCourse(record)
	if err != nil {
		return nil, err
	}

	if err := course.AssignCoach(coach); err != nil {
		return nil, err
	}

	if err := s.courses.SetCoach(ctx, id, coach.ID()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist assignment")
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, coach.ID()); err != nil {
			s.logger.Warn("timetable cache invalidation failed", zap.String("coach_id", coach.ID()), zap.Error(err))
		}
	}

	coachID := coach.ID()
	record.CoachID = &coachID
	return record, nil
}

func (s *CourseService) mutateSkills(ctx context.Context, id string, mutate func(*domain.Course) error) (*models.Course, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := rehydrateCourse(record)
	if err != nil {
		return nil, err
	}
	if err := mutate(course); err != nil {
		return nil, err
	}
	if err := s.courses.ReplaceSkills(ctx, id, course.RequiredSkills()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course skills")
	}
	record.RequiredSkills = course.RequiredSkills()
	return record, nil
}

func (s *CourseService) mutateSlots(ctx context.Context, id string, mutate func(*domain.Course) error) (*models.Course, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := rehydrateCourse(record)
	if err != nil {
		return nil, err
	}
	if err := mutate(course); err != nil {
		return nil, err
	}

	slots := slotsToModels(id, course.Schedule())
	if err := s.courses.ReplaceSlots(ctx, id, slots); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course slots")
	}
	record.Slots = slots
	return record, nil
}

var dayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

func parseDayOfWeek(raw string) (time.Weekday, error) {
	day, ok := dayNames[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid day of week")
	}
	return day, nil
}

func slotFromRequest(req TimeSlotRequest) (domain.TimeSlot, error) {
	day, err := parseDayOfWeek(req.DayOfWeek)
	if err != nil {
		return domain.TimeSlot{}, err
	}
	return domain.NewTimeSlot(day, req.StartHour, req.EndHour)
}

func slotsToModels(courseID string, slots []domain.TimeSlot) []models.CourseSlot {
	out := make([]models.CourseSlot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, models.CourseSlot{
			CourseID:  courseID,
			DayOfWeek: int(slot.Day()),
			StartHour: slot.StartHour(),
			EndHour:   slot.EndHour(),
		})
	}
	return out
}

// rehydrateCourse rebuilds the domain aggregate from stored rows. Stored
// slots went through the same constructors on the way in, so a failure here
// means corrupted data.
func rehydrateCourse(record *models.Course) (*domain.Course, error) {
	period, err := domain.NewPeriod(record.StartDate, record.EndDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored course period is invalid")
	}
	slots := make([]domain.TimeSlot, 0, len(record.Slots))
	for _, row := range record.Slots {
		slot, err := domain.NewTimeSlot(time.Weekday(row.DayOfWeek), row.StartHour, row.EndHour)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored course slot is invalid")
		}
		slots = append(slots, slot)
	}
	return domain.RestoreCourse(record.ID, record.Title, period, record.RequiredSkills, slots, record.Confirmed), nil
}

// rehydrateCoach rebuilds a coach with their currently assigned courses
// relinked, so domain double-booking checks see the full roster.
func rehydrateCoach(record *models.Coach, assigned []models.Course) (*domain.Coach, error) {
	coach := domain.RestoreCoach(record.ID, record.FullName, record.Email, record.Skills)
	for i := range assigned {
		course, err := rehydrateCourse(&assigned[i])
		if err != nil {
			return nil, err
		}
		coach.RestoreAssignment(course)
	}
	return coach, nil
}
