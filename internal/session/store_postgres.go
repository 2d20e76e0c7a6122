package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safegergis/tome/internal/platform/constants"
	"github.com/safegergis/tome/internal/platform/database/schema"
	"github.com/safegergis/tome/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func sessionColumns() string {
	t := schema.UserDataReadingSession
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.UserID, t.BookID, t.Method, t.SessionDate, t.PagesRead,
		t.StartPage, t.EndPage, t.MinutesRead, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
}

func scanSession(row interface{ Scan(...any) error }) (*Session, error) {
	session := &Session{}
	err := row.Scan(
		&session.ID, &session.UserID, &session.BookID, &session.Method,
		&session.SessionDate, &session.PagesRead, &session.StartPage, &session.EndPage,
		&session.MinutesRead, &session.Notes, &session.CreatedAt, &session.UpdatedAt,
	)
	return session, err
}

// CreateSession inserts the session row and folds its progress into the
// owning shelf entry inside one transaction.
//
// Folding rules (see foldProgress):
//
//   - end_page present: current_page advances to GREATEST(current_page, end_page)
//   - otherwise pages_read present: current_page increments by pages_read
//   - audiobook sessions advance current_seconds only, by minutes*60
//   - a want_to_read entry is promoted to currently_reading with started_at stamped
//
// No shelf entry for (user, book) means the session is recorded alone.
func (repository *PostgresRepository) CreateSession(context context.Context, session *Session) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_session_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Persist the ledger row
	s := schema.UserDataReadingSession
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		s.Table, s.UserID, s.BookID, s.Method, s.SessionDate, s.PagesRead,
		s.StartPage, s.EndPage, s.MinutesRead, s.Notes, s.CreatedAt, s.UpdatedAt,
		s.ID, s.CreatedAt, s.UpdatedAt,
	)

	err = transaction.QueryRow(context, insertQuery,
		session.UserID, session.BookID, session.Method, session.SessionDate,
		session.PagesRead, session.StartPage, session.EndPage, session.MinutesRead, session.Notes,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_session")
	}

	// Step 2: Fold progress into the shelf entry, when one exists
	e := schema.UserDataShelfEntry
	fold := foldProgress(session)

	foldQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = GREATEST(%s + $3, $4),
		    %s = %s + $5,
		    %s = CASE WHEN %s = 'want_to_read' THEN 'currently_reading' ELSE %s END,
		    %s = COALESCE(%s, NOW()),
		    %s = NOW()
		WHERE %s = $1 AND %s = $2
	`,
		e.Table,
		e.CurrentPage, e.CurrentPage,
		e.CurrentSeconds, e.CurrentSeconds,
		e.Status, e.Status, e.Status,
		e.StartedAt, e.StartedAt,
		e.UpdatedAt,
		e.UserID, e.BookID,
	)

	_, err = transaction.Exec(context, foldQuery,
		session.UserID, session.BookID, fold.pageDelta, fold.pageFloor, fold.secondsDelta,
	)
	if err != nil {
		return dberr.Wrap(err, "fold_session_progress")
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) GetSession(context context.Context, userID string, id int64) (*Session, error) {
	t := schema.UserDataReadingSession

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		sessionColumns(), t.Table, t.ID, t.UserID,
	)

	session, err := scanSession(repository.db.QueryRow(context, query, id, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_session")
	}
	return session, nil
}

func (repository *PostgresRepository) ListRecent(context context.Context, userID string, limit int) ([]*Session, error) {
	t := schema.UserDataReadingSession

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT $2
	`, sessionColumns(), t.Table, t.UserID, t.SessionDate, t.ID)

	return repository.querySessions(context, query, userID, limit)
}

func (repository *PostgresRepository) ListForBook(context context.Context, userID string, bookID int64) ([]*Session, error) {
	t := schema.UserDataReadingSession

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC, %s DESC
		LIMIT $3
	`, sessionColumns(), t.Table, t.UserID, t.BookID, t.SessionDate, t.ID)

	return repository.querySessions(context, query, userID, bookID, constants.MaxSessionListLimit)
}

func (repository *PostgresRepository) UpdateNotes(context context.Context, userID string, id int64, notes *string) (*Session, error) {
	t := schema.UserDataReadingSession

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`, t.Table, t.Notes, t.UpdatedAt, t.ID, t.UserID, sessionColumns())

	session, err := scanSession(repository.db.QueryRow(context, query, id, userID, notes))
	if err != nil {
		return nil, dberr.Wrap(err, "update_session_notes")
	}
	return session, nil
}

// DeleteSession removes the ledger row only. Shelf progress is forward-only
// and is never rolled back by a deletion.
func (repository *PostgresRepository) DeleteSession(context context.Context, userID string, id int64) error {
	t := schema.UserDataReadingSession

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, t.Table, t.ID, t.UserID)

	cmd, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_session")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) querySessions(context context.Context, query string, args ...any) ([]*Session, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sessions")
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_session")
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
