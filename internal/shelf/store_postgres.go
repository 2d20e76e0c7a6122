package shelf

import (
	"context"
	"fmt"

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

// entryColumns is the SELECT list shared by every read query.
func entryColumns() string {
	t := schema.UserDataShelfEntry
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.UserID, t.BookID, t.Status, t.Rating, t.CurrentPage, t.CurrentSeconds,
		t.UserPageCount, t.UserAudioSeconds, t.Notes, t.StartedAt, t.FinishedAt,
		t.DNFDate, t.DNFReason, t.CreatedAt, t.UpdatedAt,
	)
}

func scanEntry(row interface{ Scan(...any) error }) (*Entry, error) {
	entry := &Entry{}
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.BookID, &entry.Status, &entry.PersonalRating,
		&entry.CurrentPage, &entry.CurrentSeconds, &entry.UserPageCount, &entry.UserAudioSeconds,
		&entry.Notes, &entry.StartedAt, &entry.FinishedAt, &entry.DNFDate, &entry.DNFReason,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	return entry, err
}

func (repository *PostgresRepository) ListEntries(context context.Context, userID string, status *Status, limit, offset int) ([]*Entry, int, error) {
	t := schema.UserDataShelfEntry

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, entryColumns(), t.Table, t.UserID)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, t.Table, t.UserID)

	args := []any{userID}
	countArgs := []any{userID}

	if status != nil {
		query += fmt.Sprintf(` AND %s = $2`, t.Status)
		countQuery += fmt.Sprintf(` AND %s = $2`, t.Status)
		args = append(args, *status)
		countArgs = append(countArgs, *status)
	}

	query += fmt.Sprintf(` ORDER BY %s DESC LIMIT $%d OFFSET $%d`, t.UpdatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_shelf_entries")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_shelf_entries")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_shelf_entry")
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (repository *PostgresRepository) GetEntry(context context.Context, userID string, id int64) (*Entry, error) {
	t := schema.UserDataShelfEntry

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		entryColumns(), t.Table, t.ID, t.UserID,
	)

	entry, err := scanEntry(repository.db.QueryRow(context, query, id, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_shelf_entry")
	}
	return entry, nil
}

func (repository *PostgresRepository) GetEntryByBook(context context.Context, userID string, bookID int64) (*Entry, error) {
	t := schema.UserDataShelfEntry

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		entryColumns(), t.Table, t.UserID, t.BookID,
	)

	entry, err := scanEntry(repository.db.QueryRow(context, query, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_shelf_entry_by_book")
	}
	return entry, nil
}

func (repository *PostgresRepository) CreateEntry(context context.Context, entry *Entry) error {
	t := schema.UserDataShelfEntry

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		t.Table, t.UserID, t.BookID, t.Status, t.Rating, t.CurrentPage, t.CurrentSeconds,
		t.UserPageCount, t.UserAudioSeconds, t.Notes, t.StartedAt, t.FinishedAt,
		t.DNFDate, t.DNFReason, t.CreatedAt, t.UpdatedAt,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		entry.UserID, entry.BookID, entry.Status, entry.PersonalRating,
		entry.CurrentPage, entry.CurrentSeconds, entry.UserPageCount, entry.UserAudioSeconds,
		entry.Notes, entry.StartedAt, entry.FinishedAt, entry.DNFDate, entry.DNFReason,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	return dberr.Wrap(err, "create_shelf_entry")
}

func (repository *PostgresRepository) UpdateEntry(context context.Context, entry *Entry) error {
	t := schema.UserDataShelfEntry

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9,
		    %s = $10, %s = $11, %s = $12, %s = $13, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		t.Table, t.Status, t.Rating, t.CurrentPage, t.CurrentSeconds, t.UserPageCount,
		t.UserAudioSeconds, t.Notes, t.StartedAt, t.FinishedAt, t.DNFDate, t.DNFReason,
		t.UpdatedAt, t.ID, t.UserID, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		entry.ID, entry.UserID, entry.Status, entry.PersonalRating,
		entry.CurrentPage, entry.CurrentSeconds, entry.UserPageCount, entry.UserAudioSeconds,
		entry.Notes, entry.StartedAt, entry.FinishedAt, entry.DNFDate, entry.DNFReason,
	).Scan(&entry.UpdatedAt)

	return dberr.Wrap(err, "update_shelf_entry")
}

func (repository *PostgresRepository) DeleteEntry(context context.Context, userID string, id int64) error {
	t := schema.UserDataShelfEntry

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, t.Table, t.ID, t.UserID)

	cmd, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_shelf_entry")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
