package stats

import (
	"sort"
	"time"
)

// heatmapWindow is how far back ActiveDates reaches.
const heatmapWindow = 365 * 24 * time.Hour

// CalculateStreaks derives the streak report from a user's distinct session
// dates. Pure function; "today" is passed in so the grace-period boundary is
// testable.
//
// # Algorithm
//
// Dates are deduplicated and sorted ascending, then scanned once. A run
// continues when the next date is exactly one calendar day later. The
// longest run becomes the longest streak. The trailing run counts as the
// current streak only when it ends today or yesterday; a reader who logged
// yesterday but not yet today keeps an active streak.
func CalculateStreaks(dates []time.Time, today time.Time) Streaks {
	days := normalizeDates(dates)
	today = truncateDay(today)

	report := Streaks{ActiveDates: activeDates(days, today)}
	if len(days) == 0 {
		return report
	}

	longestLen, longestStart := 0, days[0]
	runLen, runStart := 0, days[0]

	for i, day := range days {
		if i == 0 || !day.Equal(days[i-1].AddDate(0, 0, 1)) {
			runLen, runStart = 1, day
		} else {
			runLen++
		}

		if runLen > longestLen {
			longestLen, longestStart = runLen, runStart
		}
	}

	report.LongestStreak = longestLen
	report.LongestStart = &longestStart

	// The trailing run is current only within the one-day grace period
	lastDay := days[len(days)-1]
	yesterday := today.AddDate(0, 0, -1)
	if lastDay.Equal(today) || lastDay.Equal(yesterday) {
		report.CurrentStreak = runLen
		report.CurrentStart = &runStart
	}

	return report
}

// normalizeDates truncates to midnight UTC, deduplicates, and sorts ascending.
func normalizeDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))

	for _, date := range dates {
		day := truncateDay(date)
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// activeDates formats the days falling within the trailing heatmap window.
func activeDates(days []time.Time, today time.Time) []string {
	cutoff := today.Add(-heatmapWindow)

	formatted := make([]string, 0, len(days))
	for _, day := range days {
		if day.Before(cutoff) || day.After(today) {
			continue
		}
		formatted = append(formatted, day.Format("2006-01-02"))
	}
	return formatted
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
