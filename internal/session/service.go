package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/safegergis/tome/internal/catalog"
	"github.com/safegergis/tome/internal/platform/constants"
	"github.com/safegergis/tome/internal/platform/validate"
)

// Catalog is the slice of the catalog client used to decorate responses.
type Catalog interface {
	GetBook(context context.Context, bookID int64) (*catalog.BookSummary, error)
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

// LogInput is the payload for recording a reading session.
type LogInput struct {
	BookID      int64   `json:"book_id"`
	Method      Method  `json:"reading_method"`
	SessionDate *string `json:"session_date"` // "2006-01-02", defaults to today
	PagesRead   *int    `json:"pages_read"`
	MinutesRead *int    `json:"minutes_read"`
	StartPage   *int    `json:"start_page"`
	EndPage     *int    `json:"end_page"`
	Notes       *string `json:"notes"`
}

/*
Log validates and records a reading session, folding its progress into the
owning shelf entry atomically.

Validation matrix:

  - audiobook sessions need minutes_read > 0
  - physical and ebook sessions need pages_read > 0
  - end_page must exceed start_page when both are present
  - session_date must not be in the future
*/
func (service *Service) Log(context context.Context, userID string, input LogInput) (*View, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldBookID, input.BookID <= 0, "must be a positive book id")
	validator.OneOf(FieldMethod, string(input.Method), Methods...)

	if input.Method == MethodAudiobook {
		validator.RequiredInt(FieldMinutesRead, input.MinutesRead)
	} else if input.Method.Valid() {
		validator.RequiredInt(FieldPagesRead, input.PagesRead)
	}

	validator.Positive(FieldPagesRead, input.PagesRead)
	validator.Positive(FieldMinutesRead, input.MinutesRead)
	validator.Positive(FieldStartPage, input.StartPage)
	validator.Positive(FieldEndPage, input.EndPage)

	if input.StartPage != nil && input.EndPage != nil {
		validator.Custom(FieldEndPage, *input.EndPage <= *input.StartPage, "must be greater than start_page")
	}

	sessionDate, dateErr := service.resolveDate(input.SessionDate)
	validator.Custom(FieldSessionDate, dateErr != nil, "must be a valid date in YYYY-MM-DD format")
	if dateErr == nil {
		today := service.today()
		validator.Custom(FieldSessionDate, sessionDate.After(today), "must not be in the future")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	session := &Session{
		UserID:      userID,
		BookID:      input.BookID,
		Method:      input.Method,
		SessionDate: sessionDate,
		PagesRead:   input.PagesRead,
		MinutesRead: input.MinutesRead,
		StartPage:   input.StartPage,
		EndPage:     input.EndPage,
		Notes:       input.Notes,
	}

	if err := service.repo.CreateSession(context, session); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "session_logged",
		slog.String("user_id", userID),
		slog.Int64("book_id", session.BookID),
		slog.String("method", string(session.Method)),
		slog.String("date", session.SessionDate.Format("2006-01-02")),
	)

	return service.decorate(context, session), nil
}

func (service *Service) Get(context context.Context, userID string, id int64) (*View, error) {
	session, err := service.repo.GetSession(context, userID, id)
	if err != nil {
		return nil, err
	}
	return service.decorate(context, session), nil
}

// Recent returns the user's latest sessions, newest first. The limit is
// clamped to constants.MaxSessionListLimit.
func (service *Service) Recent(context context.Context, userID string, limit int) ([]*View, error) {
	if limit <= 0 || limit > constants.MaxSessionListLimit {
		limit = constants.MaxSessionListLimit
	}

	sessions, err := service.repo.ListRecent(context, userID, limit)
	if err != nil {
		return nil, err
	}
	return service.decorateAll(context, sessions), nil
}

func (service *Service) ForBook(context context.Context, userID string, bookID int64) ([]*View, error) {
	sessions, err := service.repo.ListForBook(context, userID, bookID)
	if err != nil {
		return nil, err
	}
	return service.decorateAll(context, sessions), nil
}

// UpdateNotes edits the only mutable field of a session.
func (service *Service) UpdateNotes(context context.Context, userID string, id int64, notes *string) (*View, error) {
	session, err := service.repo.UpdateNotes(context, userID, id, notes)
	if err != nil {
		return nil, err
	}
	return service.decorate(context, session), nil
}

// Delete removes a session from the ledger. Shelf progress already folded
// from it stays in place.
func (service *Service) Delete(context context.Context, userID string, id int64) error {
	if err := service.repo.DeleteSession(context, userID, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "session_deleted",
		slog.String("user_id", userID),
		slog.Int64("session_id", id),
	)
	return nil
}

// resolveDate parses the optional session date, defaulting to today.
func (service *Service) resolveDate(raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		return service.today(), nil
	}
	return time.ParseInLocation("2006-01-02", *raw, time.UTC)
}

func (service *Service) today() time.Time {
	now := service.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (service *Service) decorate(context context.Context, session *Session) *View {
	book, err := service.books.GetBook(context, session.BookID)
	if err != nil {
		book = nil
	}
	return &View{Session: *session, Book: book}
}

func (service *Service) decorateAll(context context.Context, sessions []*Session) []*View {
	bookIDs := make([]int64, 0, len(sessions))
	for _, session := range sessions {
		bookIDs = append(bookIDs, session.BookID)
	}
	books := service.books.GetBooks(context, bookIDs)

	views := make([]*View, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, &View{Session: *session, Book: books[session.BookID]})
	}
	return views
}
