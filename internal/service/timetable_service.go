package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/coachdesk/coachdesk-api/internal/models"
	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
	"github.com/coachdesk/coachdesk-api/pkg/export"
)

type timetableCache interface {
	Get(ctx context.Context, coachID string) ([]models.TimetableEntry, bool, error)
	Set(ctx context.Context, coachID string, entries []models.TimetableEntry) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// TimetableService renders a coach's assigned courses into concrete dated
// lessons, with a Redis read-through cache and CSV/PDF export.
type TimetableService struct {
	coaches coachReader
	courses interface {
		ListByCoach(ctx context.Context, coachID string) ([]models.Course, error)
	}
	cache      timetableCache
	csv        csvRenderer
	pdf        pdfRenderer
	metrics    *MetricsService
	logger     *zap.Logger
	exportRows int
}

// NewTimetableService constructs a TimetableService. Cache and metrics may
// be nil; exportRows <= 0 disables the export row cap.
func NewTimetableService(
	coaches coachReader,
	courses courseRepository,
	cache timetableCache,
	metrics *MetricsService,
	exportRows int,
	logger *zap.Logger,
) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		coaches:    coaches,
		courses:    courses,
		cache:      cache,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		metrics:    metrics,
		logger:     logger,
		exportRows: exportRows,
	}
}

// Get returns the coach's concrete timetable, reporting whether it came
// from cache.
func (s *TimetableService) Get(ctx context.Context, coachID string) ([]models.TimetableEntry, bool, error) {
	if s.cache != nil {
		entries, hit, err := s.cache.Get(ctx, coachID)
		if err != nil {
			s.logger.Warn("timetable cache read failed", zap.String("coach_id", coachID), zap.Error(err))
		}
		if s.metrics != nil {
			s.metrics.ObserveCacheLookup(hit)
		}
		if hit {
			return entries, true, nil
		}
	}

	if _, err := s.coaches.FindByID(ctx, coachID); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "coach not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load coach")
	}

	courses, err := s.courses.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load coach courses")
	}

	var entries []models.TimetableEntry
	for i := range courses {
		course, err := rehydrateCourse(&courses[i])
		if err != nil {
			return nil, false, err
		}
		for _, slot := range course.ConcreteSlots() {
			entries = append(entries, models.TimetableEntry{
				CourseID:    courses[i].ID,
				CourseTitle: courses[i].Title,
				Date:        slot.Date,
				StartHour:   slot.StartHour,
				EndHour:     slot.EndHour,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].StartHour < entries[j].StartHour
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, coachID, entries); err != nil {
			s.logger.Warn("timetable cache write failed", zap.String("coach_id", coachID), zap.Error(err))
		}
	}
	return entries, false, nil
}

// Export renders the timetable in the requested format ("csv" or "pdf") and
// returns content plus its MIME type.
func (s *TimetableService) Export(ctx context.Context, coachID, format string) ([]byte, string, error) {
	entries, _, err := s.Get(ctx, coachID)
	if err != nil {
		return nil, "", err
	}
	if s.exportRows > 0 && len(entries) > s.exportRows {
		entries = entries[:s.exportRows]
	}

	data := export.Dataset{
		Headers: []string{"Date", "Day", "Start", "End", "Course"},
	}
	for _, entry := range entries {
		data.Rows = append(data.Rows, map[string]string{
			"Date":   entry.Date.Format("2006-01-02"),
			"Day":    entry.Date.Weekday().String(),
			"Start":  fmt.Sprintf("%02d:00", entry.StartHour),
			"End":    fmt.Sprintf("%02d:00", entry.EndHour),
			"Course": entry.CourseTitle,
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return content, "text/csv", nil
	case "pdf":
		content, err := s.pdf.Render(data, "Coach Timetable")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return content, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
