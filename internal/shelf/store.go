package shelf

import "context"

type Repository interface {
	ListEntries(context context.Context, userID string, status *Status, limit, offset int) ([]*Entry, int, error)
	GetEntry(context context.Context, userID string, id int64) (*Entry, error)
	GetEntryByBook(context context.Context, userID string, bookID int64) (*Entry, error)
	CreateEntry(context context.Context, entry *Entry) error
	UpdateEntry(context context.Context, entry *Entry) error
	DeleteEntry(context context.Context, userID string, id int64) error
}
