package stats

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/safegergis/tome/internal/catalog"
	"github.com/safegergis/tome/internal/platform/constants"
	"github.com/safegergis/tome/internal/platform/validate"
	"github.com/safegergis/tome/internal/shelf"
)

// Catalog is the slice of the catalog client used by the leaderboards.
type Catalog interface {
	GetBooks(context context.Context, bookIDs []int64) map[int64]*catalog.BookSummary
}

type Service struct {
	repo   Repository
	books  Catalog
	logger *slog.Logger

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewService(repo Repository, books Catalog, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
		now:    time.Now,
	}
}

// TimeSeries returns the dense activity series for the requested period.
// Year is ignored for WEEK and defaults to the current year otherwise.
func (service *Service) TimeSeries(context context.Context, userID string, period Period, year int) ([]TimePoint, error) {
	if !period.Valid() {
		return nil, validate.RequiredError("period", "must be one of: WEEK, MONTH, YEAR")
	}

	today := service.today()
	if year == 0 {
		year = today.Year()
	}

	var from, to time.Time
	if period == PeriodWeek {
		from, to = today.AddDate(0, 0, -6), today
	} else {
		// Pad the year range so ISO weeks spilling across the boundary
		// still pick up their days.
		from = time.Date(year-1, time.December, 26, 0, 0, 0, 0, time.UTC)
		to = time.Date(year+1, time.January, 4, 0, 0, 0, 0, time.UTC)
	}

	activity, err := service.repo.DailyActivity(context, userID, from, to)
	if err != nil {
		return nil, err
	}

	return BuildTimeSeries(activity, period, year, today), nil
}

// MethodBreakdown reports per-method activity. Every known reading method
// appears, zero-valued when unused, and the preferred method is the mode of
// session counts with a lexical tiebreak.
func (service *Service) MethodBreakdown(context context.Context, userID string) (*MethodBreakdown, error) {
	totals, err := service.repo.MethodTotals(context, userID)
	if err != nil {
		return nil, err
	}

	byMethod := make(map[string]MethodTotals, len(totals))
	totalSessions := 0
	for _, row := range totals {
		byMethod[row.Method] = row
		totalSessions += row.Sessions
	}

	breakdown := &MethodBreakdown{}
	sessionCounts := make(map[string]int)

	for _, method := range []string{"audiobook", "ebook", "physical"} {
		row := byMethod[method]

		pct := float64(0)
		if totalSessions > 0 {
			pct = round2(float64(row.Sessions) / float64(totalSessions) * 100)
		}

		breakdown.Methods = append(breakdown.Methods, MethodReport{
			Method:     method,
			Books:      row.Books,
			Pages:      row.Pages,
			Minutes:    row.Minutes,
			Sessions:   row.Sessions,
			Percentage: pct,
		})

		if row.Sessions > 0 {
			sessionCounts[method] = row.Sessions
		}
	}

	breakdown.PreferredMethod = modeOf(sessionCounts)
	return breakdown, nil
}

// StreaksReport derives the streak report from the user's distinct session dates.
func (service *Service) StreaksReport(context context.Context, userID string) (*Streaks, error) {
	dates, err := service.repo.DistinctDates(context, userID)
	if err != nil {
		return nil, err
	}

	streaks := CalculateStreaks(dates, service.today())
	return &streaks, nil
}

// GenreLeaderboard groups the user's shelved books by catalog genre.
func (service *Service) GenreLeaderboard(context context.Context, userID string, limit int) ([]GroupReport, error) {
	return service.leaderboard(context, userID, limit, func(book *catalog.BookSummary) []catalog.NamedRef {
		return book.Genres
	})
}

// AuthorLeaderboard groups the user's shelved books by catalog author.
func (service *Service) AuthorLeaderboard(context context.Context, userID string, limit int) ([]GroupReport, error) {
	return service.leaderboard(context, userID, limit, func(book *catalog.BookSummary) []catalog.NamedRef {
		return book.Authors
	})
}

// leaderboard builds a grouped report over shelf snapshots joined with
// catalog links. Books the catalog cannot resolve right now are skipped;
// the report degrades rather than fails.
func (service *Service) leaderboard(context context.Context, userID string, limit int, linksOf func(*catalog.BookSummary) []catalog.NamedRef) ([]GroupReport, error) {
	if limit <= 0 {
		limit = constants.DefaultLeaderboardLimit
	}

	snapshots, err := service.repo.ShelfSnapshots(context, userID)
	if err != nil {
		return nil, err
	}

	bookIDs := make([]int64, 0, len(snapshots))
	for _, snapshot := range snapshots {
		bookIDs = append(bookIDs, snapshot.BookID)
	}
	books := service.books.GetBooks(context, bookIDs)

	type accumulator struct {
		report      GroupReport
		ratingSum   int
		ratingCount int
	}
	groups := make(map[int64]*accumulator)

	for _, snapshot := range snapshots {
		book := books[snapshot.BookID]
		if book == nil {
			continue
		}

		for _, link := range linksOf(book) {
			group, ok := groups[link.ID]
			if !ok {
				group = &accumulator{report: GroupReport{ID: link.ID, Name: link.Name}}
				groups[link.ID] = group
			}

			switch snapshot.Status {
			case shelf.StatusRead:
				group.report.ReadCount++
			case shelf.StatusCurrentlyReading:
				group.report.CurrentlyReading++
			case shelf.StatusWantToRead:
				group.report.WantToRead++
			}

			if snapshot.Rating != nil {
				group.ratingSum += *snapshot.Rating
				group.ratingCount++
			}
		}
	}

	reports := make([]GroupReport, 0, len(groups))
	for _, group := range groups {
		if group.ratingCount > 0 {
			avg := round2(float64(group.ratingSum) / float64(group.ratingCount))
			group.report.AverageRating = &avg
		}
		reports = append(reports, group.report)
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].ReadCount != reports[j].ReadCount {
			return reports[i].ReadCount > reports[j].ReadCount
		}
		return reports[i].Name < reports[j].Name
	})

	if len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// CompletionReport computes completion and DNF metrics with divide-by-zero
// guards throughout.
func (service *Service) CompletionReport(context context.Context, userID string) (*Completion, error) {
	counts, err := service.repo.StatusCounts(context, userID)
	if err != nil {
		return nil, err
	}

	reasons, err := service.repo.DNFReasons(context, userID)
	if err != nil {
		return nil, err
	}

	spans, err := service.repo.CompletedSpans(context, userID)
	if err != nil {
		return nil, err
	}

	report := &Completion{
		TotalStarted:   counts.Started,
		TotalCompleted: counts.Read,
		TotalDNF:       counts.DidNotFinish,
		DNFReasons:     orderedCounts(reasons),
		Velocity:       velocityOf(spans),
	}

	if counts.Started > 0 {
		report.CompletionRate = round2(float64(counts.Read) / float64(counts.Started) * 100)
		report.DNFRate = round2(float64(counts.DidNotFinish) / float64(counts.Started) * 100)
	}

	return report, nil
}

// Overview composes the full dashboard report from the individual reports.
func (service *Service) Overview(context context.Context, userID string) (*Overview, error) {
	counts, err := service.repo.StatusCounts(context, userID)
	if err != nil {
		return nil, err
	}

	totals, err := service.repo.Totals(context, userID)
	if err != nil {
		return nil, err
	}

	methods, err := service.MethodBreakdown(context, userID)
	if err != nil {
		return nil, err
	}

	genres, err := service.GenreLeaderboard(context, userID, constants.OverviewLeaderboardLimit)
	if err != nil {
		return nil, err
	}

	authors, err := service.AuthorLeaderboard(context, userID, constants.OverviewLeaderboardLimit)
	if err != nil {
		return nil, err
	}

	streaks, err := service.StreaksReport(context, userID)
	if err != nil {
		return nil, err
	}

	completion, err := service.CompletionReport(context, userID)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Summary: Summary{
			BooksRead:        counts.Read,
			CurrentlyReading: counts.CurrentlyReading,
			WantToRead:       counts.WantToRead,
			DidNotFinish:     counts.DidNotFinish,
			TotalPages:       totals.Pages,
			TotalMinutes:     totals.Minutes,
			TotalSessions:    totals.Sessions,
		},
		Methods:    *methods,
		TopGenres:  genres,
		TopAuthors: authors,
		Streaks:    *streaks,
		Completion: *completion,
	}, nil
}

// velocityOf averages completion speed over the finished books. Books
// started and finished on the same day are excluded from the per-day
// averages so they cannot divide by zero.
func velocityOf(spans []CompletedSpan) Velocity {
	if len(spans) == 0 {
		return Velocity{}
	}

	daysSum := float64(0)
	pagesPerDaySum, minutesPerDaySum := float64(0), float64(0)
	perDayCount := 0

	for _, span := range spans {
		days := span.FinishedAt.Sub(span.StartedAt).Hours() / 24
		daysSum += days

		if days > 0 {
			pagesPerDaySum += float64(span.Pages) / days
			minutesPerDaySum += float64(span.Minutes) / days
			perDayCount++
		}
	}

	velocity := Velocity{AvgDaysToComplete: round2(daysSum / float64(len(spans)))}
	if perDayCount > 0 {
		velocity.AvgPagesPerDay = round2(pagesPerDaySum / float64(perDayCount))
		velocity.AvgMinutesPerDay = round2(minutesPerDaySum / float64(perDayCount))
	}

	return velocity
}

func (service *Service) today() time.Time {
	now := service.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
