package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safegergis/tome/internal/platform/database/schema"
	"github.com/safegergis/tome/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) DailyActivity(context context.Context, userID string, from, to time.Time) ([]DailyActivity, error) {
	s := schema.UserDataReadingSession

	query := fmt.Sprintf(`
		SELECT %s,
		       COALESCE(SUM(%s), 0),
		       COALESCE(SUM(%s), 0),
		       COUNT(*)
		FROM %s
		WHERE %s = $1 AND %s BETWEEN $2 AND $3
		GROUP BY %s
		ORDER BY %s ASC
	`,
		s.SessionDate, s.PagesRead, s.MinutesRead,
		s.Table, s.UserID, s.SessionDate, s.SessionDate, s.SessionDate,
	)

	rows, err := repository.db.Query(context, query, userID, from, to)
	if err != nil {
		return nil, dberr.Wrap(err, "daily_activity")
	}
	defer rows.Close()

	var activity []DailyActivity
	for rows.Next() {
		var row DailyActivity
		if err := rows.Scan(&row.Date, &row.Pages, &row.Minutes, &row.Sessions); err != nil {
			return nil, dberr.Wrap(err, "scan_daily_activity")
		}
		activity = append(activity, row)
	}

	return activity, nil
}

func (repository *PostgresRepository) MethodTotals(context context.Context, userID string) ([]MethodTotals, error) {
	s := schema.UserDataReadingSession

	query := fmt.Sprintf(`
		SELECT %s,
		       COUNT(DISTINCT %s),
		       COALESCE(SUM(%s), 0),
		       COALESCE(SUM(%s), 0),
		       COUNT(*)
		FROM %s
		WHERE %s = $1
		GROUP BY %s
	`,
		s.Method, s.BookID, s.PagesRead, s.MinutesRead,
		s.Table, s.UserID, s.Method,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "method_totals")
	}
	defer rows.Close()

	var totals []MethodTotals
	for rows.Next() {
		var row MethodTotals
		if err := rows.Scan(&row.Method, &row.Books, &row.Pages, &row.Minutes, &row.Sessions); err != nil {
			return nil, dberr.Wrap(err, "scan_method_totals")
		}
		totals = append(totals, row)
	}

	return totals, nil
}

func (repository *PostgresRepository) DistinctDates(context context.Context, userID string) ([]time.Time, error) {
	s := schema.UserDataReadingSession

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		s.SessionDate, s.Table, s.UserID, s.SessionDate,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "distinct_dates")
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, dberr.Wrap(err, "scan_distinct_date")
		}
		dates = append(dates, date)
	}

	return dates, nil
}

func (repository *PostgresRepository) StatusCounts(context context.Context, userID string) (StatusCounts, error) {
	e := schema.UserDataShelfEntry

	query := fmt.Sprintf(`
		SELECT COUNT(*) FILTER (WHERE %s IS NOT NULL),
		       COUNT(*) FILTER (WHERE %s = 'read'),
		       COUNT(*) FILTER (WHERE %s = 'currently_reading'),
		       COUNT(*) FILTER (WHERE %s = 'want_to_read'),
		       COUNT(*) FILTER (WHERE %s = 'did_not_finish')
		FROM %s
		WHERE %s = $1
	`,
		e.StartedAt, e.Status, e.Status, e.Status, e.Status,
		e.Table, e.UserID,
	)

	var counts StatusCounts
	err := repository.db.QueryRow(context, query, userID).Scan(
		&counts.Started, &counts.Read, &counts.CurrentlyReading,
		&counts.WantToRead, &counts.DidNotFinish,
	)
	if err != nil {
		return StatusCounts{}, dberr.Wrap(err, "status_counts")
	}

	return counts, nil
}

func (repository *PostgresRepository) DNFReasons(context context.Context, userID string) (map[string]int, error) {
	e := schema.UserDataShelfEntry

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM %s
		WHERE %s = $1 AND %s = 'did_not_finish' AND %s IS NOT NULL
		GROUP BY %s
	`,
		e.DNFReason, e.Table, e.UserID, e.Status, e.DNFReason, e.DNFReason,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "dnf_reasons")
	}
	defer rows.Close()

	reasons := make(map[string]int)
	for rows.Next() {
		var reason string
		var count int
		if err := rows.Scan(&reason, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_dnf_reason")
		}
		reasons[reason] = count
	}

	return reasons, nil
}

func (repository *PostgresRepository) CompletedSpans(context context.Context, userID string) ([]CompletedSpan, error) {
	e := schema.UserDataShelfEntry
	s := schema.UserDataReadingSession

	// Each completed entry carries its lifecycle span plus the total volume
	// logged against its book.
	query := fmt.Sprintf(`
		SELECT e.%s, e.%s,
		       COALESCE(SUM(s.%s), 0),
		       COALESCE(SUM(s.%s), 0)
		FROM %s e
		LEFT JOIN %s s ON s.%s = e.%s AND s.%s = e.%s
		WHERE e.%s = $1 AND e.%s = 'read'
		  AND e.%s IS NOT NULL AND e.%s IS NOT NULL
		GROUP BY e.%s, e.%s, e.%s
	`,
		e.StartedAt, e.FinishedAt,
		s.PagesRead, s.MinutesRead,
		e.Table, s.Table, s.UserID, e.UserID, s.BookID, e.BookID,
		e.UserID, e.Status, e.StartedAt, e.FinishedAt,
		e.ID, e.StartedAt, e.FinishedAt,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "completed_spans")
	}
	defer rows.Close()

	var spans []CompletedSpan
	for rows.Next() {
		var span CompletedSpan
		if err := rows.Scan(&span.StartedAt, &span.FinishedAt, &span.Pages, &span.Minutes); err != nil {
			return nil, dberr.Wrap(err, "scan_completed_span")
		}
		spans = append(spans, span)
	}

	return spans, nil
}

func (repository *PostgresRepository) ShelfSnapshots(context context.Context, userID string) ([]ShelfSnapshot, error) {
	e := schema.UserDataShelfEntry

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		e.BookID, e.Status, e.Rating, e.Table, e.UserID,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "shelf_snapshots")
	}
	defer rows.Close()

	var snapshots []ShelfSnapshot
	for rows.Next() {
		var snapshot ShelfSnapshot
		if err := rows.Scan(&snapshot.BookID, &snapshot.Status, &snapshot.Rating); err != nil {
			return nil, dberr.Wrap(err, "scan_shelf_snapshot")
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func (repository *PostgresRepository) Totals(context context.Context, userID string) (Totals, error) {
	s := schema.UserDataReadingSession

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(%s), 0), COALESCE(SUM(%s), 0), COUNT(*)
		FROM %s
		WHERE %s = $1
	`,
		s.PagesRead, s.MinutesRead, s.Table, s.UserID,
	)

	var totals Totals
	err := repository.db.QueryRow(context, query, userID).Scan(&totals.Pages, &totals.Minutes, &totals.Sessions)
	if err != nil {
		return Totals{}, dberr.Wrap(err, "session_totals")
	}

	return totals, nil
}
