package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/coachdesk/coachdesk-api/internal/models"
)

// CoachRepository manages persistence for coaches and their skills.
type CoachRepository struct {
	db *sqlx.DB
}

// NewCoachRepository constructs a CoachRepository.
func NewCoachRepository(db *sqlx.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

// List returns coaches matching filters along with total count.
func (r *CoachRepository) List(ctx context.Context, filter models.CoachFilter) ([]models.Coach, int, error) {
	base := "FROM coaches WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, search)
	}
	if filter.Skill != "" {
		conditions = append(conditions, fmt.Sprintf("id IN (SELECT coach_id FROM coach_skills WHERE LOWER(skill) = LOWER($%d))", len(args)+1))
		args = append(args, filter.Skill)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]string{
		"full_name":  "full_name",
		"email":      "email",
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

	query := fmt.Sprintf("SELECT id, full_name, email, active, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, column, order, size, offset)
	var coaches []models.Coach
	if err := r.db.SelectContext(ctx, &coaches, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list coaches: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count coaches: %w", err)
	}

	if err := r.attachSkills(ctx, coaches); err != nil {
		return nil, 0, err
	}

	return coaches, total, nil
}

// FindByID fetches a coach and their skills.
func (r *CoachRepository) FindByID(ctx context.Context, id string) (*models.Coach, error) {
	const query = `SELECT id, full_name, email, active, created_at, updated_at FROM coaches WHERE id = $1`
	var coach models.Coach
	if err := r.db.GetContext(ctx, &coach, query, id); err != nil {
		return nil, err
	}

	skills, err := r.listSkills(ctx, id)
	if err != nil {
		return nil, err
	}
	coach.Skills = skills
	return &coach, nil
}

// ExistsByEmail checks if another coach uses the same email.
func (r *CoachRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	query := "SELECT 1 FROM coaches WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check coach email: %w", err)
	}
	return true, nil
}

// Create inserts a coach row plus their skills in one transaction.
func (r *CoachRepository) Create(ctx context.Context, coach *models.Coach) error {
	if coach.ID == "" {
		coach.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	coach.CreatedAt = now
	coach.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create coach: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO coaches (id, full_name, email, active, created_at, updated_at)
		VALUES (:id, :full_name, :email, :active, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, coach); err != nil {
		return fmt.Errorf("create coach: %w", err)
	}
	if err := insertSkills(ctx, tx, "coach_skills", "coach_id", coach.ID, coach.Skills); err != nil {
		return err
	}
	return tx.Commit()
}

// Update modifies the coach row. Skills are replaced separately.
func (r *CoachRepository) Update(ctx context.Context, coach *models.Coach) error {
	coach.UpdatedAt = time.Now().UTC()
	const query = `UPDATE coaches SET full_name = :full_name, email = :email, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, coach); err != nil {
		return fmt.Errorf("update coach: %w", err)
	}
	return nil
}

// ReplaceSkills swaps the coach's stored skill set.
func (r *CoachRepository) ReplaceSkills(ctx context.Context, coachID string, skills []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace skills: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM coach_skills WHERE coach_id = $1`, coachID); err != nil {
		return fmt.Errorf("clear coach skills: %w", err)
	}
	if err := insertSkills(ctx, tx, "coach_skills", "coach_id", coachID, skills); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE coaches SET updated_at = $2 WHERE id = $1`, coachID, time.Now().UTC()); err != nil {
		return fmt.Errorf("touch coach: %w", err)
	}
	return tx.Commit()
}

// Deactivate sets a coach's active flag to false.
func (r *CoachRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE coaches SET active = FALSE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate coach: %w", err)
	}
	return nil
}

func (r *CoachRepository) listSkills(ctx context.Context, coachID string) ([]string, error) {
	var skills []string
	const query = `SELECT skill FROM coach_skills WHERE coach_id = $1 ORDER BY skill`
	if err := r.db.SelectContext(ctx, &skills, query, coachID); err != nil {
		return nil, fmt.Errorf("list coach skills: %w", err)
	}
	return skills, nil
}

func (r *CoachRepository) attachSkills(ctx context.Context, coaches []models.Coach) error {
	if len(coaches) == 0 {
		return nil
	}
	ids := make([]string, len(coaches))
	for i, coach := range coaches {
		ids[i] = coach.ID
	}

	var rows []struct {
		CoachID string `db:"coach_id"`
		Skill   string `db:"skill"`
	}
	const query = `SELECT coach_id, skill FROM coach_skills WHERE coach_id = ANY($1) ORDER BY skill`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("list coach skills: %w", err)
	}

	byCoach := make(map[string][]string, len(coaches))
	for _, row := range rows {
		byCoach[row.CoachID] = append(byCoach[row.CoachID], row.Skill)
	}
	for i := range coaches {
		coaches[i].Skills = byCoach[coaches[i].ID]
	}
	return nil
}

func insertSkills(ctx context.Context, tx *sqlx.Tx, table, ownerColumn, ownerID string, skills []string) error {
	for _, skill := range skills {
		query := fmt.Sprintf("INSERT INTO %s (%s, skill) VALUES ($1, $2)", table, ownerColumn)
		if _, err := tx.ExecContext(ctx, query, ownerID, skill); err != nil {
			return fmt.Errorf("insert skill: %w", err)
		}
	}
	return nil
}
