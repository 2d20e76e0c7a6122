package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeSeries_Week(t *testing.T) {
	today := day(2026, time.April, 10)
	activity := []DailyActivity{
		{Date: day(2026, time.April, 5), Pages: 30, Minutes: 45, Sessions: 2},
		{Date: day(2026, time.April, 10), Pages: 12, Sessions: 1},
	}

	points := BuildTimeSeries(activity, PeriodWeek, 0, today)

	require.Len(t, points, 7)
	assert.Equal(t, "2026-04-04", points[0].Period)
	assert.Equal(t, "2026-04-10", points[6].Period)

	// days without sessions still appear, zero-valued
	assert.Equal(t, TimePoint{Period: "2026-04-06"}, points[2])

	assert.Equal(t, 30, points[1].Pages)
	assert.Equal(t, 2, points[1].Sessions)
	assert.Equal(t, 12, points[6].Pages)
}

func TestBuildTimeSeries_Month(t *testing.T) {
	activity := []DailyActivity{
		// both fall in ISO week 2 of 2026
		{Date: day(2026, time.January, 5), Pages: 20, Sessions: 1},
		{Date: day(2026, time.January, 8), Pages: 15, Sessions: 1},
		// Dec 31 2025 falls in ISO week 1 of 2026 and counts
		{Date: day(2025, time.December, 31), Pages: 8, Sessions: 1},
		// Dec 28 2025 is ISO year 2025 and must be filtered out
		{Date: day(2025, time.December, 28), Pages: 99, Sessions: 9},
	}

	points := BuildTimeSeries(activity, PeriodMonth, 2026, day(2026, time.June, 1))

	require.Len(t, points, 53)
	assert.Equal(t, "2026-W01", points[0].Period)
	assert.Equal(t, "2026-W53", points[52].Period)

	assert.Equal(t, 35, points[1].Pages)
	assert.Equal(t, 2, points[1].Sessions)
	assert.Equal(t, 8, points[0].Pages)
	assert.Equal(t, 1, points[0].Sessions)
}

func TestBuildTimeSeries_MonthShortYear(t *testing.T) {
	points := BuildTimeSeries(nil, PeriodMonth, 2025, day(2025, time.June, 1))
	assert.Len(t, points, 52)
}

func TestBuildTimeSeries_Year(t *testing.T) {
	activity := []DailyActivity{
		{Date: day(2026, time.March, 2), Pages: 40, Minutes: 60, Sessions: 2},
		{Date: day(2026, time.March, 20), Pages: 10, Sessions: 1},
		{Date: day(2025, time.March, 20), Pages: 77, Sessions: 7},
	}

	points := BuildTimeSeries(activity, PeriodYear, 2026, day(2026, time.June, 1))

	require.Len(t, points, 12)
	assert.Equal(t, "2026-01", points[0].Period)
	assert.Equal(t, "2026-12", points[11].Period)

	march := points[2]
	assert.Equal(t, "2026-03", march.Period)
	assert.Equal(t, 50, march.Pages)
	assert.Equal(t, 60, march.Minutes)
	assert.Equal(t, 3, march.Sessions)
}
