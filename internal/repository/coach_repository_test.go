package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachdesk/coachdesk-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCoachRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	rows := sqlmock.NewRows([]string{"id", "full_name", "email", "active", "created_at", "updated_at"}).
		AddRow("c1", "James Bond", "bond@example.com", true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, email, active, created_at, updated_at FROM coaches WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM coaches WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT coach_id, skill FROM coach_skills WHERE coach_id = ANY($1) ORDER BY skill")).
		WillReturnRows(sqlmock.NewRows([]string{"coach_id", "skill"}).AddRow("c1", "Golf"))

	list, total, err := repo.List(context.Background(), models.CoachFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"Golf"}, list[0].Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachRepositoryListFilterBySkill(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("id IN (SELECT coach_id FROM coach_skills WHERE LOWER(skill) = LOWER($1))")).
		WithArgs("golf").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "active", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("golf").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	list, total, err := repo.List(context.Background(), models.CoachFilter{Skill: "golf"})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, email, active, created_at, updated_at FROM coaches WHERE id = $1")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "active", "created_at", "updated_at"}).
			AddRow("c1", "James Bond", "bond@example.com", true, time.Now(), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT skill FROM coach_skills WHERE coach_id = $1 ORDER BY skill")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"skill"}).AddRow("Diving").AddRow("Golf"))

	coach, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "James Bond", coach.FullName)
	assert.Equal(t, []string{"Diving", "Golf"}, coach.Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO coaches").
		WithArgs(sqlmock.AnyArg(), "James Bond", "bond@example.com", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO coach_skills (coach_id, skill) VALUES ($1, $2)")).
		WithArgs(sqlmock.AnyArg(), "Golf").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	coach := &models.Coach{FullName: "James Bond", Email: "bond@example.com", Active: true, Skills: []string{"Golf"}}
	err := repo.Create(context.Background(), coach)
	require.NoError(t, err)
	assert.NotEmpty(t, coach.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachRepositoryReplaceSkills(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM coach_skills WHERE coach_id = $1")).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO coach_skills (coach_id, skill) VALUES ($1, $2)")).
		WithArgs("c1", "Tennis").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE coaches SET updated_at = $2 WHERE id = $1")).
		WithArgs("c1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.ReplaceSkills(context.Background(), "c1", []string{"Tennis"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM coaches WHERE LOWER(email) = LOWER($1) LIMIT 1")).
		WithArgs("bond@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "bond@example.com", "")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachRepositoryDeactivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectExec("UPDATE coaches SET active = FALSE").
		WithArgs("c1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
