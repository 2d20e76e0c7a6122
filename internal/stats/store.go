package stats

import (
	"context"
	"time"

	"github.com/safegergis/tome/internal/shelf"
)

// DailyActivity is the per-day session roll-up supplied by the store.
type DailyActivity struct {
	Date     time.Time
	Pages    int
	Minutes  int
	Sessions int
}

// MethodTotals is the per-method session roll-up supplied by the store.
type MethodTotals struct {
	Method   string
	Books    int
	Pages    int
	Minutes  int
	Sessions int
}

// CompletedSpan is one finished book with its lifecycle span and its total
// logged volume, used for velocity math.
type CompletedSpan struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Pages      int
	Minutes    int
}

// ShelfSnapshot is the minimal per-entry projection used by leaderboards.
type ShelfSnapshot struct {
	BookID int64
	Status shelf.Status
	Rating *int
}

// StatusCounts are the shelf totals grouped by status, plus the number of
// entries with started_at set.
type StatusCounts struct {
	Started          int
	Read             int
	CurrentlyReading int
	WantToRead       int
	DidNotFinish     int
}

// Totals are the lifetime session sums for the overview summary.
type Totals struct {
	Pages    int
	Minutes  int
	Sessions int
}

// Repository supplies the raw rows the aggregator composes. All reads.
type Repository interface {
	DailyActivity(context context.Context, userID string, from, to time.Time) ([]DailyActivity, error)
	MethodTotals(context context.Context, userID string) ([]MethodTotals, error)
	DistinctDates(context context.Context, userID string) ([]time.Time, error)
	StatusCounts(context context.Context, userID string) (StatusCounts, error)
	DNFReasons(context context.Context, userID string) (map[string]int, error)
	CompletedSpans(context context.Context, userID string) ([]CompletedSpan, error)
	ShelfSnapshots(context context.Context, userID string) ([]ShelfSnapshot, error)
	Totals(context context.Context, userID string) (Totals, error)
}
