package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

func mustSlot(t *testing.T, day time.Weekday, start, end int) TimeSlot {
	t.Helper()
	slot, err := NewTimeSlot(day, start, end)
	require.NoError(t, err)
	return slot
}

func TestNewTimeSlotValidRanges(t *testing.T) {
	for start := WorkdayStartHour; start < WorkdayEndHour; start++ {
		for end := start + 1; end <= WorkdayEndHour; end++ {
			slot, err := NewTimeSlot(time.Monday, start, end)
			require.NoError(t, err)
			assert.Equal(t, end-start, slot.Duration())
		}
	}
}

func TestNewTimeSlotRejectsInvalidBounds(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		message string
	}{
		{"before working hours", 8, 12, "Start hour must be at 9 or later."},
		{"after working hours", 10, 18, "End hour must be at 17 or earlier."},
		{"end before start", 14, 12, "End hour cannot be before the start hour."},
		{"zero duration", 10, 10, "A time slot must last at least one hour."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTimeSlot(time.Monday, tc.start, tc.end)
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())
			assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
		})
	}
}

func TestTimeSlotOverlapSameDay(t *testing.T) {
	morning := mustSlot(t, time.Monday, 9, 11)
	midday := mustSlot(t, time.Monday, 10, 12)
	afternoon := mustSlot(t, time.Monday, 13, 15)

	assert.True(t, morning.OverlapsWith(midday))
	assert.True(t, midday.OverlapsWith(morning), "overlap must be symmetric")
	assert.False(t, morning.OverlapsWith(afternoon))
}

func TestTimeSlotOverlapTouchingBoundary(t *testing.T) {
	// Closed-interval policy: a slot ending at 12 overlaps one starting at 12.
	first := mustSlot(t, time.Monday, 10, 12)
	second := mustSlot(t, time.Monday, 12, 14)

	assert.True(t, first.OverlapsWith(second))
	assert.True(t, second.OverlapsWith(first))
}

func TestTimeSlotDifferentDaysNeverOverlap(t *testing.T) {
	monday := mustSlot(t, time.Monday, 10, 12)
	tuesday := mustSlot(t, time.Tuesday, 10, 12)

	assert.False(t, monday.OverlapsWith(tuesday))
	assert.False(t, tuesday.OverlapsWith(monday))
}

func TestTimeSlotEqual(t *testing.T) {
	a := mustSlot(t, time.Friday, 9, 10)
	b := mustSlot(t, time.Friday, 9, 10)
	c := mustSlot(t, time.Friday, 9, 11)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
