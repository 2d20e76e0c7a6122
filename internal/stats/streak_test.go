package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestCalculateStreaks_BrokenRun(t *testing.T) {
	dates := []time.Time{
		day(2026, time.January, 1),
		day(2026, time.January, 2),
		day(2026, time.January, 3),
		day(2026, time.January, 5),
	}

	streaks := CalculateStreaks(dates, day(2026, time.January, 5))

	assert.Equal(t, 3, streaks.LongestStreak)
	require.NotNil(t, streaks.LongestStart)
	assert.Equal(t, day(2026, time.January, 1), *streaks.LongestStart)

	assert.Equal(t, 1, streaks.CurrentStreak)
	require.NotNil(t, streaks.CurrentStart)
	assert.Equal(t, day(2026, time.January, 5), *streaks.CurrentStart)
}

func TestCalculateStreaks_GracePeriod(t *testing.T) {
	dates := []time.Time{
		day(2026, time.March, 8),
		day(2026, time.March, 9),
		day(2026, time.March, 10),
	}

	t.Run("last session yesterday keeps the streak", func(t *testing.T) {
		streaks := CalculateStreaks(dates, day(2026, time.March, 11))
		assert.Equal(t, 3, streaks.CurrentStreak)
	})

	t.Run("last session two days ago breaks it", func(t *testing.T) {
		streaks := CalculateStreaks(dates, day(2026, time.March, 12))
		assert.Equal(t, 0, streaks.CurrentStreak)
		assert.Nil(t, streaks.CurrentStart)

		// the longest streak is historical and survives the break
		assert.Equal(t, 3, streaks.LongestStreak)
	})
}

func TestCalculateStreaks_Empty(t *testing.T) {
	streaks := CalculateStreaks(nil, day(2026, time.January, 1))

	assert.Equal(t, 0, streaks.CurrentStreak)
	assert.Equal(t, 0, streaks.LongestStreak)
	assert.Nil(t, streaks.CurrentStart)
	assert.Nil(t, streaks.LongestStart)
	assert.Empty(t, streaks.ActiveDates)
}

func TestCalculateStreaks_SingleDayToday(t *testing.T) {
	today := day(2026, time.June, 1)
	streaks := CalculateStreaks([]time.Time{today}, today)

	assert.Equal(t, 1, streaks.CurrentStreak)
	assert.Equal(t, 1, streaks.LongestStreak)
}

func TestCalculateStreaks_NormalizesTimestamps(t *testing.T) {
	// Same calendar day logged at different times counts once
	dates := []time.Time{
		time.Date(2026, time.May, 3, 8, 15, 0, 0, time.UTC),
		time.Date(2026, time.May, 3, 22, 40, 0, 0, time.UTC),
		time.Date(2026, time.May, 4, 1, 0, 0, 0, time.UTC),
	}

	streaks := CalculateStreaks(dates, day(2026, time.May, 4))

	assert.Equal(t, 2, streaks.CurrentStreak)
	assert.Equal(t, []string{"2026-05-03", "2026-05-04"}, streaks.ActiveDates)
}

func TestCalculateStreaks_ActiveDatesWindow(t *testing.T) {
	today := day(2026, time.August, 1)
	dates := []time.Time{
		today.AddDate(0, 0, -400),
		today.AddDate(0, 0, -10),
		today,
	}

	streaks := CalculateStreaks(dates, today)

	assert.Equal(t, []string{"2026-07-22", "2026-08-01"}, streaks.ActiveDates)
}
