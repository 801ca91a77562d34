package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coachdesk/coachdesk-api/internal/models"
	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

type mockTimetableCache struct {
	entries map[string][]models.TimetableEntry
	sets    int
}

func (m *mockTimetableCache) Get(ctx context.Context, coachID string) ([]models.TimetableEntry, bool, error) {
	entries, ok := m.entries[coachID]
	return entries, ok, nil
}

func (m *mockTimetableCache) Set(ctx context.Context, coachID string, entries []models.TimetableEntry) error {
	if m.entries == nil {
		m.entries = make(map[string][]models.TimetableEntry)
	}
	m.entries[coachID] = entries
	m.sets++
	return nil
}

func bookedMayCourse() models.Course {
	coachID := "c1"
	return models.Course{
		ID:        "crs",
		Title:     "Scuba Diving",
		StartDate: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
		Confirmed: true,
		CoachID:   &coachID,
		Slots:     []models.CourseSlot{{CourseID: "crs", DayOfWeek: int(time.Monday), StartHour: 9, EndHour: 11}},
	}
}

func TestTimetableServiceExpandsWeeklySlots(t *testing.T) {
	coaches := &mockCoachRepo{items: map[string]*models.Coach{
		"c1": {ID: "c1", FullName: "James Bond", Email: "bond@example.com", Active: true},
	}}
	courses := &mockCourseRepo{byCoach: map[string][]models.Course{"c1": {bookedMayCourse()}}}
	cache := &mockTimetableCache{}
	service := NewTimetableService(coaches, courses, cache, nil, 0, zap.NewNop())

	entries, cached, err := service.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, entries, 4)

	// Mondays in May 2025: the 5th, 12th, 19th and 26th.
	assert.Equal(t, time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC), entries[0].Date)
	assert.Equal(t, time.Date(2025, time.May, 26, 0, 0, 0, 0, time.UTC), entries[3].Date)
	assert.Equal(t, 9, entries[0].StartHour)
	assert.Equal(t, 11, entries[0].EndHour)
	assert.Equal(t, 1, cache.sets)
}

func TestTimetableServiceCacheHit(t *testing.T) {
	cached := []models.TimetableEntry{{CourseID: "crs", CourseTitle: "Scuba Diving"}}
	cache := &mockTimetableCache{entries: map[string][]models.TimetableEntry{"c1": cached}}
	service := NewTimetableService(&mockCoachRepo{}, &mockCourseRepo{}, cache, nil, 0, zap.NewNop())

	entries, hit, err := service.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, cached, entries)
}

func TestTimetableServiceCoachNotFound(t *testing.T) {
	service := NewTimetableService(&mockCoachRepo{}, &mockCourseRepo{}, nil, nil, 0, zap.NewNop())

	_, _, err := service.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}

func TestTimetableServiceExportCSV(t *testing.T) {
	coaches := &mockCoachRepo{items: map[string]*models.Coach{
		"c1": {ID: "c1", FullName: "James Bond", Email: "bond@example.com", Active: true},
	}}
	courses := &mockCourseRepo{byCoach: map[string][]models.Course{"c1": {bookedMayCourse()}}}
	service := NewTimetableService(coaches, courses, nil, nil, 0, zap.NewNop())

	content, contentType, err := service.Export(context.Background(), "c1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(content)
	assert.True(t, strings.HasPrefix(body, "Date,Day,Start,End,Course"))
	assert.Contains(t, body, "2025-05-05,Monday,09:00,11:00,Scuba Diving")
}

func TestTimetableServiceExportPDF(t *testing.T) {
	coaches := &mockCoachRepo{items: map[string]*models.Coach{
		"c1": {ID: "c1", FullName: "James Bond", Email: "bond@example.com", Active: true},
	}}
	courses := &mockCourseRepo{byCoach: map[string][]models.Course{"c1": {bookedMayCourse()}}}
	service := NewTimetableService(coaches, courses, nil, nil, 0, zap.NewNop())

	content, contentType, err := service.Export(context.Background(), "c1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, content)
}

func TestTimetableServiceExportUnsupportedFormat(t *testing.T) {
	coaches := &mockCoachRepo{items: map[string]*models.Coach{
		"c1": {ID: "c1", FullName: "James Bond", Email: "bond@example.com", Active: true},
	}}
	service := NewTimetableService(coaches, &mockCourseRepo{}, nil, nil, 0, zap.NewNop())

	_, _, err := service.Export(context.Background(), "c1", "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}
