package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/coachdesk/coachdesk-api/internal/models"
)

// CourseRepository manages persistence for courses, their skills and slots.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching filters along with total count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Confirmed != nil {
		conditions = append(conditions, fmt.Sprintf("confirmed = $%d", len(args)+1))
		args = append(args, *filter.Confirmed)
	}
	if filter.CoachID != "" {
		conditions = append(conditions, fmt.Sprintf("coach_id = $%d", len(args)+1))
		args = append(args, filter.CoachID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(title) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]string{
		"title":      "title",
		"start_date": "start_date",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, title, start_date, end_date, confirmed, coach_id, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, column, order, size, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	if err := r.attachDetails(ctx, courses); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// FindByID fetches a course aggregate including skills and slots.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, title, start_date, end_date, confirmed, coach_id, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}

	courses := []models.Course{course}
	if err := r.attachDetails(ctx, courses); err != nil {
		return nil, err
	}
	return &courses[0], nil
}

// ListByCoach returns the full aggregates of every course assigned to a coach.
func (r *CourseRepository) ListByCoach(ctx context.Context, coachID string) ([]models.Course, error) {
	const query = `SELECT id, title, start_date, end_date, confirmed, coach_id, created_at, updated_at FROM courses WHERE coach_id = $1 ORDER BY start_date`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, coachID); err != nil {
		return nil, fmt.Errorf("list coach courses: %w", err)
	}
	if err := r.attachDetails(ctx, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Create inserts a course with its skills and slots in one transaction.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create course: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO courses (id, title, start_date, end_date, confirmed, coach_id, created_at, updated_at)
		VALUES (:id, :title, :start_date, :end_date, :confirmed, :coach_id, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	if err := insertSkills(ctx, tx, "course_skills", "course_id", course.ID, course.RequiredSkills); err != nil {
		return err
	}
	if err := insertSlots(ctx, tx, course.ID, course.Slots); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateTitle renames a course.
func (r *CourseRepository) UpdateTitle(ctx context.Context, id, title string) error {
	const query = `UPDATE courses SET title = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, title, time.Now().UTC()); err != nil {
		return fmt.Errorf("update course title: %w", err)
	}
	return nil
}

// ReplaceSkills swaps the course's stored required skills.
func (r *CourseRepository) ReplaceSkills(ctx context.Context, courseID string, skills []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace course skills: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM course_skills WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("clear course skills: %w", err)
	}
	if err := insertSkills(ctx, tx, "course_skills", "course_id", courseID, skills); err != nil {
		return err
	}
	if err := touchCourse(ctx, tx, courseID); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceSlots swaps the course's stored weekly schedule.
func (r *CourseRepository) ReplaceSlots(ctx context.Context, courseID string, slots []models.CourseSlot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace course slots: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM course_slots WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("clear course slots: %w", err)
	}
	if err := insertSlots(ctx, tx, courseID, slots); err != nil {
		return err
	}
	if err := touchCourse(ctx, tx, courseID); err != nil {
		return err
	}
	return tx.Commit()
}

// SetConfirmed flips the confirmation flag.
func (r *CourseRepository) SetConfirmed(ctx context.Context, id string, confirmed bool) error {
	const query = `UPDATE courses SET confirmed = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, confirmed, time.Now().UTC()); err != nil {
		return fmt.Errorf("confirm course: %w", err)
	}
	return nil
}

// SetCoach stores the assigned coach reference.
func (r *CourseRepository) SetCoach(ctx context.Context, id, coachID string) error {
	const query = `UPDATE courses SET coach_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, coachID, time.Now().UTC()); err != nil {
		return fmt.Errorf("assign course coach: %w", err)
	}
	return nil
}

func (r *CourseRepository) attachDetails(ctx context.Context, courses []models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]string, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}

	var skillRows []struct {
		CourseID string `db:"course_id"`
		Skill    string `db:"skill"`
	}
	const skillQuery = `SELECT course_id, skill FROM course_skills WHERE course_id = ANY($1) ORDER BY skill`
	if err := r.db.SelectContext(ctx, &skillRows, skillQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("list course skills: %w", err)
	}
	skillsByCourse := make(map[string][]string, len(courses))
	for _, row := range skillRows {
		skillsByCourse[row.CourseID] = append(skillsByCourse[row.CourseID], row.Skill)
	}

	var slotRows []models.CourseSlot
	const slotQuery = `SELECT id, course_id, day_of_week, start_hour, end_hour FROM course_slots WHERE course_id = ANY($1) ORDER BY day_of_week, start_hour`
	if err := r.db.SelectContext(ctx, &slotRows, slotQuery, pq.Array(ids)); err != nil {
		return fmt.Errorf("list course slots: %w", err)
	}
	slotsByCourse := make(map[string][]models.CourseSlot, len(courses))
	for _, row := range slotRows {
		slotsByCourse[row.CourseID] = append(slotsByCourse[row.CourseID], row)
	}

	for i := range courses {
		courses[i].RequiredSkills = skillsByCourse[courses[i].ID]
		courses[i].Slots = slotsByCourse[courses[i].ID]
	}
	return nil
}

func insertSlots(ctx context.Context, tx *sqlx.Tx, courseID string, slots []models.CourseSlot) error {
	for _, slot := range slots {
		id := slot.ID
		if id == "" {
			id = uuid.NewString()
		}
		const query = `INSERT INTO course_slots (id, course_id, day_of_week, start_hour, end_hour) VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.ExecContext(ctx, query, id, courseID, slot.DayOfWeek, slot.StartHour, slot.EndHour); err != nil {
			return fmt.Errorf("insert slot: %w", err)
		}
	}
	return nil
}

func touchCourse(ctx context.Context, tx *sqlx.Tx, courseID string) error {
	if _, err := tx.ExecContext(ctx, `UPDATE courses SET updated_at = $2 WHERE id = $1`, courseID, time.Now().UTC()); err != nil {
		return fmt.Errorf("touch course: %w", err)
	}
	return nil
}
