package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustPeriod(t *testing.T, start, end time.Time) Period {
	t.Helper()
	p, err := NewPeriod(start, end)
	require.NoError(t, err)
	return p
}

func TestNewPeriodRejectsInvertedRange(t *testing.T) {
	_, err := NewPeriod(date(2025, time.June, 1), date(2025, time.May, 1))
	require.Error(t, err)
	assert.Equal(t, "Start date cannot be after the end date.", err.Error())
}

func TestNewPeriodAllowsSingleDay(t *testing.T) {
	p, err := NewPeriod(date(2025, time.May, 1), date(2025, time.May, 1))
	require.NoError(t, err)
	assert.True(t, p.Start().Equal(p.End()))
}

func TestNewPeriodDropsTimeOfDay(t *testing.T) {
	p, err := NewPeriod(
		time.Date(2025, time.May, 1, 14, 30, 0, 0, time.UTC),
		time.Date(2025, time.May, 2, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.May, 1), p.Start())
	assert.Equal(t, date(2025, time.May, 2), p.End())
}

func TestPeriodOverlap(t *testing.T) {
	may := mustPeriod(t, date(2025, time.May, 1), date(2025, time.May, 31))
	june := mustPeriod(t, date(2025, time.June, 1), date(2025, time.June, 30))
	lateMay := mustPeriod(t, date(2025, time.May, 20), date(2025, time.June, 10))

	assert.True(t, may.OverlapsWith(may), "a period always overlaps itself")
	assert.False(t, may.OverlapsWith(june))
	assert.False(t, june.OverlapsWith(may))
	assert.True(t, may.OverlapsWith(lateMay))
	assert.True(t, lateMay.OverlapsWith(may), "overlap must be symmetric")
	assert.True(t, lateMay.OverlapsWith(june))
}

func TestPeriodOverlapTouchingBounds(t *testing.T) {
	first := mustPeriod(t, date(2025, time.May, 1), date(2025, time.May, 15))
	second := mustPeriod(t, date(2025, time.May, 15), date(2025, time.May, 31))

	assert.True(t, first.OverlapsWith(second), "shared boundary date counts as overlap")
}

func TestPeriodContainsWeekday(t *testing.T) {
	// 2025-05-01 is a Thursday.
	thursdayOnly := mustPeriod(t, date(2025, time.May, 1), date(2025, time.May, 1))
	assert.True(t, thursdayOnly.ContainsWeekday(time.Thursday))
	assert.False(t, thursdayOnly.ContainsWeekday(time.Friday))

	thuToSat := mustPeriod(t, date(2025, time.May, 1), date(2025, time.May, 3))
	assert.True(t, thuToSat.ContainsWeekday(time.Friday))
	assert.False(t, thuToSat.ContainsWeekday(time.Monday))

	fullWeek := mustPeriod(t, date(2025, time.May, 1), date(2025, time.May, 7))
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, fullWeek.ContainsWeekday(d))
	}
}
