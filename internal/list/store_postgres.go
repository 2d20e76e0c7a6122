package list

import (
	"context"
	"fmt"
	"strings"

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

// listColumns is the SELECT list shared by every list read query.
func listColumns() string {
	t := schema.UserDataBookList
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.UserID, t.Name, t.Slug, t.Description, t.ListType,
		t.Visibility, t.IsDefault, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	)
}

func scanList(row interface{ Scan(...any) error }) (*List, error) {
	list := &List{}
	err := row.Scan(
		&list.ID, &list.UserID, &list.Name, &list.Slug, &list.Description,
		&list.ListType, &list.Visibility, &list.IsDefault,
		&list.CreatedAt, &list.UpdatedAt, &list.DeletedAt,
	)
	return list, err
}

func (repository *PostgresRepository) ListLists(context context.Context, userID string) ([]*List, map[string]int, error) {
	t := schema.UserDataBookList
	lb := schema.UserDataListBook

	query := fmt.Sprintf(`
		SELECT %s, count(b.%s)
		FROM %s l
		LEFT JOIN %s b ON b.%s = l.%s
		WHERE l.%s = $1 AND l.%s IS NULL
		GROUP BY l.%s
		ORDER BY l.%s DESC
	`,
		prefixColumns("l", listColumns()), lb.BookID,
		t.Table, lb.Table, lb.ListID, t.ID,
		t.UserID, t.DeletedAt, t.ID, t.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, nil, dberr.Wrap(err, "list_book_lists")
	}
	defer rows.Close()

	var lists []*List
	counts := make(map[string]int)

	for rows.Next() {
		list := &List{}
		var bookCount int
		err := rows.Scan(
			&list.ID, &list.UserID, &list.Name, &list.Slug, &list.Description,
			&list.ListType, &list.Visibility, &list.IsDefault,
			&list.CreatedAt, &list.UpdatedAt, &list.DeletedAt,
			&bookCount,
		)
		if err != nil {
			return nil, nil, dberr.Wrap(err, "scan_book_list")
		}
		lists = append(lists, list)
		counts[list.ID] = bookCount
	}

	return lists, counts, nil
}

func (repository *PostgresRepository) GetList(context context.Context, listID string) (*List, error) {
	t := schema.UserDataBookList

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		listColumns(), t.Table, t.ID, t.DeletedAt,
	)

	list, err := scanList(repository.db.QueryRow(context, query, listID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_list")
	}
	return list, nil
}

func (repository *PostgresRepository) GetDefault(context context.Context, userID string, listType Type) (*List, error) {
	t := schema.UserDataBookList

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = true AND %s IS NULL`,
		listColumns(), t.Table, t.UserID, t.ListType, t.IsDefault, t.DeletedAt,
	)

	list, err := scanList(repository.db.QueryRow(context, query, userID, listType))
	if err != nil {
		return nil, dberr.Wrap(err, "get_default_list")
	}
	return list, nil
}

func (repository *PostgresRepository) CreateList(context context.Context, list *List) error {
	t := schema.UserDataBookList

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.UserID, t.Name, t.Slug, t.Description, t.ListType,
		t.Visibility, t.IsDefault, t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		list.ID, list.UserID, list.Name, list.Slug, list.Description,
		list.ListType, list.Visibility, list.IsDefault,
	).Scan(&list.CreatedAt, &list.UpdatedAt)

	return dberr.Wrap(err, "create_book_list")
}

func (repository *PostgresRepository) UpdateList(context context.Context, list *List) error {
	t := schema.UserDataBookList

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s
	`,
		t.Table, t.Name, t.Slug, t.Description, t.Visibility, t.UpdatedAt,
		t.ID, t.UserID, t.DeletedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		list.ID, list.UserID, list.Name, list.Slug, list.Description, list.Visibility,
	).Scan(&list.UpdatedAt)

	return dberr.Wrap(err, "update_book_list")
}

func (repository *PostgresRepository) SoftDeleteList(context context.Context, userID, listID string) error {
	t := schema.UserDataBookList
	lb := schema.UserDataListBook

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_list")
	}
	defer transaction.Rollback(context)

	// 1. Mark the list deleted
	markQuery := fmt.Sprintf(`
		UPDATE %s SET %s = NOW(), %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
	`, t.Table, t.DeletedAt, t.UpdatedAt, t.ID, t.UserID, t.DeletedAt)

	cmd, err := transaction.Exec(context, markQuery, listID, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_book_list")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	// 2. Drop its memberships
	clearQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, lb.Table, lb.ListID)
	if _, err := transaction.Exec(context, clearQuery, listID); err != nil {
		return dberr.Wrap(err, "clear_list_books")
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) ProvisionDefaults(context context.Context, lists []*List) error {
	t := schema.UserDataBookList

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_provision_defaults")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.UserID, t.Name, t.Slug, t.Description, t.ListType,
		t.Visibility, t.IsDefault, t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	for _, list := range lists {
		err := transaction.QueryRow(context, query,
			list.ID, list.UserID, list.Name, list.Slug, list.Description,
			list.ListType, list.Visibility,
		).Scan(&list.CreatedAt, &list.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "provision_default_list")
		}
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) ListBooks(context context.Context, listID string) ([]*Membership, error) {
	lb := schema.UserDataListBook

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC
	`, lb.ListID, lb.BookID, lb.SortOrder, lb.AddedAt, lb.Table, lb.ListID, lb.SortOrder)

	rows, err := repository.db.Query(context, query, listID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_list_books")
	}
	defer rows.Close()

	var memberships []*Membership
	for rows.Next() {
		membership := &Membership{}
		if err := rows.Scan(&membership.ListID, &membership.BookID, &membership.Position, &membership.AddedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_list_book")
		}
		memberships = append(memberships, membership)
	}

	return memberships, nil
}

func (repository *PostgresRepository) AddBook(context context.Context, listID string, bookID int64) (*Membership, error) {
	lb := schema.UserDataListBook

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		SELECT $1, $2, COALESCE(MAX(%s), 0) + 1, NOW()
		FROM %s WHERE %s = $1
		RETURNING %s, %s, %s, %s
	`,
		lb.Table, lb.ListID, lb.BookID, lb.SortOrder, lb.AddedAt,
		lb.SortOrder, lb.Table, lb.ListID,
		lb.ListID, lb.BookID, lb.SortOrder, lb.AddedAt,
	)

	membership := &Membership{}
	err := repository.db.QueryRow(context, query, listID, bookID).
		Scan(&membership.ListID, &membership.BookID, &membership.Position, &membership.AddedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "add_list_book")
	}
	return membership, nil
}

func (repository *PostgresRepository) RemoveBook(context context.Context, listID string, bookID int64) error {
	lb := schema.UserDataListBook

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, lb.Table, lb.ListID, lb.BookID)

	cmd, err := repository.db.Exec(context, query, listID, bookID)
	if err != nil {
		return dberr.Wrap(err, "remove_list_book")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Reorder(context context.Context, listID string, bookIDs []int64) error {
	lb := schema.UserDataListBook

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_reorder_list")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`UPDATE %s SET %s = $3 WHERE %s = $1 AND %s = $2`,
		lb.Table, lb.SortOrder, lb.ListID, lb.BookID,
	)

	for position, bookID := range bookIDs {
		cmd, err := transaction.Exec(context, query, listID, bookID, position+1)
		if err != nil {
			return dberr.Wrap(err, "reorder_list_book")
		}
		if cmd.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
	}

	return transaction.Commit(context)
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, column := range parts {
		parts[i] = alias + "." + column
	}
	return strings.Join(parts, ", ")
}
