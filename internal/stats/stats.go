package stats

import "time"

// Period selects the time-series bucketing scheme.
type Period string

const (
	PeriodWeek  Period = "WEEK"
	PeriodMonth Period = "MONTH"
	PeriodYear  Period = "YEAR"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// Streaks is the consecutive-day reading streak report.
type Streaks struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	CurrentStart  *time.Time `json:"current_streak_start"`
	LongestStart  *time.Time `json:"longest_streak_start"`

	// ActiveDates lists the distinct reading days within the last 365 days,
	// formatted YYYY-MM-DD, for heatmap rendering.
	ActiveDates []string `json:"active_dates"`
}

// TimePoint is one dense bucket of a time-series report. Buckets with no
// sessions still appear with zero values.
type TimePoint struct {
	Period   string `json:"period"`
	Pages    int    `json:"pages_read"`
	Minutes  int    `json:"minutes_read"`
	Sessions int    `json:"session_count"`
}

// MethodReport is the per-method slice of the reading-method breakdown.
type MethodReport struct {
	Method     string  `json:"method"`
	Books      int     `json:"book_count"`
	Pages      int     `json:"total_pages"`
	Minutes    int     `json:"total_minutes"`
	Sessions   int     `json:"session_count"`
	Percentage float64 `json:"percentage"`
}

// MethodBreakdown reports activity per reading method. Every known method
// appears even with zero sessions.
type MethodBreakdown struct {
	Methods         []MethodReport `json:"methods"`
	PreferredMethod string         `json:"preferred_method"`
}

// GroupReport is one row of a genre or author leaderboard.
type GroupReport struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	ReadCount        int      `json:"read_count"`
	CurrentlyReading int      `json:"currently_reading_count"`
	WantToRead       int      `json:"want_to_read_count"`
	AverageRating    *float64 `json:"average_rating"`
}

// ReasonCount is one grouped DNF reason with its frequency.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Velocity reports how fast completed books get finished.
type Velocity struct {
	AvgDaysToComplete float64 `json:"avg_days_to_complete"`
	AvgPagesPerDay    float64 `json:"avg_pages_per_day"`
	AvgMinutesPerDay  float64 `json:"avg_minutes_per_day"`
}

// Completion is the completion/DNF report.
type Completion struct {
	TotalStarted   int           `json:"total_started"`
	TotalCompleted int           `json:"total_completed"`
	TotalDNF       int           `json:"total_dnf"`
	CompletionRate float64       `json:"completion_rate"`
	DNFRate        float64       `json:"dnf_rate"`
	DNFReasons     []ReasonCount `json:"dnf_reasons"`
	Velocity       Velocity      `json:"velocity"`
}

// Summary holds the headline totals of the overview.
type Summary struct {
	BooksRead        int `json:"books_read"`
	CurrentlyReading int `json:"currently_reading"`
	WantToRead       int `json:"want_to_read"`
	DidNotFinish     int `json:"did_not_finish"`
	TotalPages       int `json:"total_pages_read"`
	TotalMinutes     int `json:"total_minutes_read"`
	TotalSessions    int `json:"total_sessions"`
}

// Overview is the comprehensive dashboard report: a read-time composition of
// the individual reports, no extra state.
type Overview struct {
	Summary    Summary         `json:"summary"`
	Methods    MethodBreakdown `json:"reading_methods"`
	TopGenres  []GroupReport   `json:"top_genres"`
	TopAuthors []GroupReport   `json:"top_authors"`
	Streaks    Streaks         `json:"streaks"`
	Completion Completion      `json:"completion"`
}
