package session

import "context"

type Repository interface {
	// CreateSession persists the session and folds its progress into the
	// owning shelf entry within one transaction.
	CreateSession(context context.Context, session *Session) error
	GetSession(context context.Context, userID string, id int64) (*Session, error)
	ListRecent(context context.Context, userID string, limit int) ([]*Session, error)
	ListForBook(context context.Context, userID string, bookID int64) ([]*Session, error)
	UpdateNotes(context context.Context, userID string, id int64, notes *string) (*Session, error)
	DeleteSession(context context.Context, userID string, id int64) error
}
