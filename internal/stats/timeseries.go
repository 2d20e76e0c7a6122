package stats

import (
	"fmt"
	"time"
)

// BuildTimeSeries buckets per-day activity into a dense series. Every bucket
// of the requested range appears, zero-valued when empty, so charts render
// contiguous axes.
//
//   - WEEK:  the last 7 calendar days ending today, one point per day
//   - MONTH: the ISO weeks of the given year, one point per week
//   - YEAR:  the 12 months of the given year, one point per month
//
// Pure function over the raw rows; no database-specific date arithmetic.
func BuildTimeSeries(activity []DailyActivity, period Period, year int, today time.Time) []TimePoint {
	switch period {
	case PeriodWeek:
		return dailySeries(activity, today)
	case PeriodMonth:
		return weeklySeries(activity, year)
	case PeriodYear:
		return monthlySeries(activity, year)
	}
	return nil
}

func dailySeries(activity []DailyActivity, today time.Time) []TimePoint {
	today = truncateDay(today)

	byDay := make(map[string]DailyActivity, len(activity))
	for _, row := range activity {
		byDay[truncateDay(row.Date).Format("2006-01-02")] = row
	}

	points := make([]TimePoint, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset).Format("2006-01-02")
		row := byDay[day]
		points = append(points, TimePoint{
			Period:   day,
			Pages:    row.Pages,
			Minutes:  row.Minutes,
			Sessions: row.Sessions,
		})
	}

	return points
}

func weeklySeries(activity []DailyActivity, year int) []TimePoint {
	type bucket struct{ pages, minutes, sessions int }
	byWeek := make(map[int]bucket)

	for _, row := range activity {
		isoYear, isoWeek := row.Date.ISOWeek()
		if isoYear != year {
			continue
		}
		b := byWeek[isoWeek]
		b.pages += row.Pages
		b.minutes += row.Minutes
		b.sessions += row.Sessions
		byWeek[isoWeek] = b
	}

	points := make([]TimePoint, 0, 53)
	for week := 1; week <= isoWeeksInYear(year); week++ {
		b := byWeek[week]
		points = append(points, TimePoint{
			Period:   fmt.Sprintf("%d-W%02d", year, week),
			Pages:    b.pages,
			Minutes:  b.minutes,
			Sessions: b.sessions,
		})
	}

	return points
}

func monthlySeries(activity []DailyActivity, year int) []TimePoint {
	type bucket struct{ pages, minutes, sessions int }
	byMonth := make(map[time.Month]bucket)

	for _, row := range activity {
		date := row.Date.UTC()
		if date.Year() != year {
			continue
		}
		b := byMonth[date.Month()]
		b.pages += row.Pages
		b.minutes += row.Minutes
		b.sessions += row.Sessions
		byMonth[date.Month()] = b
	}

	points := make([]TimePoint, 0, 12)
	for month := time.January; month <= time.December; month++ {
		b := byMonth[month]
		points = append(points, TimePoint{
			Period:   fmt.Sprintf("%d-%02d", year, month),
			Pages:    b.pages,
			Minutes:  b.minutes,
			Sessions: b.sessions,
		})
	}

	return points
}

// isoWeeksInYear returns 52 or 53: December 28th always falls in the last
// ISO week of its year.
func isoWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}
