package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/coachdesk/coachdesk-api/internal/domain"
	"github.com/coachdesk/coachdesk-api/internal/models"
	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

type coachRepository interface {
	List(ctx context.Context, filter models.CoachFilter) ([]models.Coach, int, error)
	FindByID(ctx context.Context, id string) (*models.Coach, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, coach *models.Coach) error
	Update(ctx context.Context, coach *models.Coach) error
	ReplaceSkills(ctx context.Context, coachID string, skills []string) error
	Deactivate(ctx context.Context, id string) error
}

// CreateCoachRequest represents payload for creating coaches.
type CreateCoachRequest struct {
	FullName string   `json:"full_name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Skills   []string `json:"skills" validate:"omitempty,dive,required"`
}

// UpdateCoachRequest represents payload for updating coaches.
type UpdateCoachRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Active   *bool  `json:"active"`
}

// SkillRequest carries a single skill.
type SkillRequest struct {
	Skill string `json:"skill" validate:"required"`
}

// UpdateSkillsRequest replaces a whole skill set.
type UpdateSkillsRequest struct {
	Skills []string `json:"skills" validate:"required,dive,required"`
}

// CoachService orchestrates coach operations around the domain entity.
type CoachService struct {
	repo      coachRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCoachService constructs a CoachService.
func NewCoachService(repo coachRepository, validate *validator.Validate, logger *zap.Logger) *CoachService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoachService{repo: repo, validator: validate, logger: logger}
}

// List returns coaches plus pagination data.
func (s *CoachService) List(ctx context.Context, filter models.CoachFilter) ([]models.Coach, *models.Pagination, error) {
	coaches, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list coaches")
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
	return coaches, pagination, nil
}

// Get returns a coach by id.
func (s *CoachService) Get(ctx context.Context, id string) (*models.Coach, error) {
	coach, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "coach not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load coach")
	}
	return coach, nil
}

// Create registers a new coach. Name normalisation and skill uniqueness run
// through the domain entity.
func (s *CoachService) Create(ctx context.Context, req CreateCoachRequest) (*models.Coach, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid coach payload")
	}

	coach, err := domain.NewCoach(req.FullName, req.Email)
	if err != nil {
		return nil, err
	}
	for _, skill := range req.Skills {
		if err := coach.AddSkill(skill); err != nil {
			return nil, err
		}
	}

	if err := s.ensureUniqueEmail(ctx, coach.Email(), ""); err != nil {
		return nil, err
	}

	record := &models.Coach{
		FullName: coach.Name(),
		Email:    coach.Email(),
		Active:   true,
		Skills:   coach.Skills(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create coach")
	}
	return record, nil
}

// Update modifies coach details.
func (s *CoachService) Update(ctx context.Context, id string, req UpdateCoachRequest) (*models.Coach, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid coach payload")
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	coach := domain.RestoreCoach(record.ID, record.FullName, record.Email, record.Skills)
	if err := coach.UpdateDetails(req.FullName, req.Email); err != nil {
		return nil, err
	}

	if err := s.ensureUniqueEmail(ctx, coach.Email(), id); err != nil {
		return nil, err
	}

	record.FullName = coach.Name()
	record.Email = coach.Email()
	if req.Active != nil {
		record.Active = *req.Active
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update coach")
	}
	return record, nil
}

// AddSkill adds one skill to the coach's set.
func (s *CoachService) AddSkill(ctx context.Context, id string, req SkillRequest) (*models.Coach, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid skill payload")
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	coach := domain.RestoreCoach(record.ID, record.FullName, record.Email, record.Skills)
	if err := coach.AddSkill(req.Skill); err != nil {
		return nil, err
	}

	return s.persistSkills(ctx, record, coach.Skills())
}

// RemoveSkill drops one skill; removing an absent skill succeeds silently.
func (s *CoachService) RemoveSkill(ctx context.Context, id, skill string) (*models.Coach, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	coach := domain.RestoreCoach(record.ID, record.FullName, record.Email, record.Skills)
	coach.RemoveSkill(skill)

	return s.persistSkills(ctx, record, coach.Skills())
}

// UpdateSkills replaces the coach's entire skill set.
func (s *CoachService) UpdateSkills(ctx context.Context, id string, req UpdateSkillsRequest) (*models.Coach, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid skills payload")
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	coach := domain.RestoreCoach(record.ID, record.FullName, record.Email, record.Skills)
	if err := coach.UpdateSkills(req.Skills); err != nil {
		return nil, err
	}

	return s.persistSkills(ctx, record, coach.Skills())
}

// Deactivate marks a coach inactive. Deletion stays a storage concern; the
// roster history keeps the row.
func (s *CoachService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate coach")
	}
	return nil
}

func (s *CoachService) persistSkills(ctx context.Context, record *models.Coach, skills []string) (*models.Coach, error) {
	if err := s.repo.ReplaceSkills(ctx, record.ID, skills); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update coach skills")
	}
	record.Skills = skills
	return record, nil
}

func (s *CoachService) ensureUniqueEmail(ctx context.Context, email, excludeID string) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "email already used")
	}
	return nil
}
