package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseDays(t *testing.T) {
	start := time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)

	days := CourseDays(start, 3)
	require.Len(t, days, 3)
	assert.True(t, days[0].StartingDay)
	assert.False(t, days[0].EndingDay)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), days[2].Date)
	assert.True(t, days[2].EndingDay)

	single := CourseDays(start, 1)
	require.Len(t, single, 1)
	assert.True(t, single[0].StartingDay)
	assert.True(t, single[0].EndingDay)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), CourseEnd(start, 3))
}

func TestInCourse(t *testing.T) {
	start := time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)

	assert.False(t, InCourse(start.AddDate(0, 0, -1), start, 3))
	assert.True(t, InCourse(start, start, 3))
	assert.True(t, InCourse(start.AddDate(0, 0, 2).Add(23*time.Hour), start, 3))
	assert.False(t, InCourse(start.AddDate(0, 0, 3), start, 3))
}

func TestNextReminder(t *testing.T) {
	lead := 5 * time.Minute
	start := time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)
	hour := Clock{Hour: 8}

	t.Run("before course starts", func(t *testing.T) {
		now := start.AddDate(0, 0, -2)
		got, ok := NextReminder(hour, start, 3, lead, now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 12, 22, 7, 55, 0, 0, time.UTC), got)
	})

	t.Run("today's trigger still ahead", func(t *testing.T) {
		now := time.Date(2025, 12, 23, 7, 0, 0, 0, time.UTC)
		got, ok := NextReminder(hour, start, 3, lead, now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 12, 23, 7, 55, 0, 0, time.UTC), got)
	})

	t.Run("today's trigger passed", func(t *testing.T) {
		now := time.Date(2025, 12, 23, 7, 56, 0, 0, time.UTC)
		got, ok := NextReminder(hour, start, 3, lead, now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 12, 24, 7, 55, 0, 0, time.UTC), got)
	})

	t.Run("course over", func(t *testing.T) {
		now := time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC)
		_, ok := NextReminder(hour, start, 3, lead, now)
		assert.False(t, ok)
	})

	t.Run("lead crosses midnight", func(t *testing.T) {
		now := time.Date(2025, 12, 22, 12, 0, 0, 0, time.UTC)
		got, ok := NextReminder(Clock{Hour: 0, Minute: 2}, start, 3, lead, now)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 12, 22, 23, 57, 0, 0, time.UTC), got)
	})
}

func TestNormalizeHours(t *testing.T) {
	t.Run("sorts and keeps exact count", func(t *testing.T) {
		got, err := NormalizeHours([]string{"20:00", "8:00"}, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"08:00", "20:00"}, got)
	})

	t.Run("pads with defaults", func(t *testing.T) {
		got, err := NormalizeHours([]string{"08:00"}, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"08:00", "12:00", "16:00"}, got)
	})

	t.Run("truncates keeping first given", func(t *testing.T) {
		got, err := NormalizeHours([]string{"22:00", "06:00", "14:00"}, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"06:00", "22:00"}, got)
	})

	t.Run("pads beyond defaults", func(t *testing.T) {
		got, err := NormalizeHours(nil, 8)
		require.NoError(t, err)
		assert.Len(t, got, 8)
		assert.Equal(t, "00:00", got[0])
	})

	t.Run("every count keeps invariant", func(t *testing.T) {
		for n := 1; n <= MaxTimesPerDay; n++ {
			got, err := NormalizeHours([]string{"09:30"}, n)
			require.NoError(t, err)
			require.Len(t, got, n)
		}
	})

	t.Run("rejects", func(t *testing.T) {
		_, err := NormalizeHours([]string{"08:00", "8:00"}, 2)
		assert.ErrorIs(t, err, ErrDuplicateHour)

		_, err = NormalizeHours([]string{"8h"}, 1)
		assert.ErrorIs(t, err, ErrInvalidClock)

		_, err = NormalizeHours(nil, 0)
		assert.ErrorIs(t, err, ErrTimesPerDay)
	})
}
