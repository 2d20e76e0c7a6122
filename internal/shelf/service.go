package shelf

import (
	"context"
	"log/slog"
	"time"

	"github.com/safegergis/tome/internal/catalog"
	"github.com/safegergis/tome/internal/platform/validate"
)

// Catalog is the slice of the catalog client the shelf needs for decoration.
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

// AddInput is the payload for putting a book on the shelf.
type AddInput struct {
	BookID           int64   `json:"book_id"`
	Status           Status  `json:"status"`
	UserPageCount    *int    `json:"user_page_count"`
	UserAudioSeconds *int    `json:"user_audio_length_seconds"`
	PersonalRating   *int    `json:"personal_rating"`
	Notes            *string `json:"notes"`
}

// UpdateInput is the payload for editing an existing entry. Progress
// counters, overrides, rating, and notes are replaceable; status changes go
// through [Service.UpdateStatus].
type UpdateInput struct {
	CurrentPage      *int    `json:"current_page"`
	CurrentSeconds   *int    `json:"current_seconds"`
	UserPageCount    *int    `json:"user_page_count"`
	UserAudioSeconds *int    `json:"user_audio_length_seconds"`
	PersonalRating   *int    `json:"personal_rating"`
	Notes            *string `json:"notes"`
}

func (service *Service) AddBook(context context.Context, userID string, input AddInput) (*EntryView, error) {
	if input.Status == "" {
		input.Status = StatusWantToRead
	}

	validator := &validate.Validator{}
	validator.Custom(FieldBookID, input.BookID <= 0, "must be a positive book id")
	validator.OneOf(FieldStatus, string(input.Status), Statuses...)
	validator.Positive(FieldUserPageCount, input.UserPageCount)
	validator.Positive(FieldUserAudioSeconds, input.UserAudioSeconds)
	if input.PersonalRating != nil {
		validator.Range(FieldPersonalRating, *input.PersonalRating, 1, 5)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &Entry{
		UserID:           userID,
		BookID:           input.BookID,
		Status:           input.Status,
		UserPageCount:    input.UserPageCount,
		UserAudioSeconds: input.UserAudioSeconds,
		PersonalRating:   input.PersonalRating,
		Notes:            input.Notes,
	}
	service.applyStatusTimestamps(entry, input.Status)

	if err := service.repo.CreateEntry(context, entry); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "shelf_entry_created",
		slog.String("user_id", userID),
		slog.Int64("book_id", entry.BookID),
		slog.String("status", string(entry.Status)),
	)

	return service.decorate(context, entry), nil
}

func (service *Service) GetEntry(context context.Context, userID string, id int64) (*EntryView, error) {
	entry, err := service.repo.GetEntry(context, userID, id)
	if err != nil {
		return nil, err
	}
	return service.decorate(context, entry), nil
}

// EntryForBook finds the caller's shelf entry by catalog book, for clients
// that know the book but not the entry id.
func (service *Service) EntryForBook(context context.Context, userID string, bookID int64) (*EntryView, error) {
	entry, err := service.repo.GetEntryByBook(context, userID, bookID)
	if err != nil {
		return nil, err
	}
	return service.decorate(context, entry), nil
}

func (service *Service) ListEntries(context context.Context, userID string, status *Status, limit, offset int) ([]*EntryView, int, error) {
	if status != nil && !status.Valid() {
		return nil, 0, validate.RequiredError(FieldStatus, "must be one of: want_to_read, currently_reading, read, did_not_finish")
	}

	entries, total, err := service.repo.ListEntries(context, userID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	bookIDs := make([]int64, 0, len(entries))
	for _, entry := range entries {
		bookIDs = append(bookIDs, entry.BookID)
	}
	books := service.books.GetBooks(context, bookIDs)

	views := make([]*EntryView, 0, len(entries))
	for _, entry := range entries {
		book := books[entry.BookID]
		views = append(views, &EntryView{
			Entry:    *entry,
			Book:     book,
			Progress: ResolveProgress(entry, factsOf(book)),
		})
	}

	return views, total, nil
}

func (service *Service) UpdateEntry(context context.Context, userID string, id int64, input UpdateInput) (*EntryView, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldUserPageCount, input.UserPageCount)
	validator.Positive(FieldUserAudioSeconds, input.UserAudioSeconds)
	if input.CurrentPage != nil {
		validator.Custom(FieldCurrentPage, *input.CurrentPage < 0, "must not be negative")
	}
	if input.CurrentSeconds != nil {
		validator.Custom(FieldCurrentSeconds, *input.CurrentSeconds < 0, "must not be negative")
	}
	if input.PersonalRating != nil {
		validator.Range(FieldPersonalRating, *input.PersonalRating, 1, 5)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry, err := service.repo.GetEntry(context, userID, id)
	if err != nil {
		return nil, err
	}

	if input.CurrentPage != nil {
		entry.CurrentPage = *input.CurrentPage
	}
	if input.CurrentSeconds != nil {
		entry.CurrentSeconds = *input.CurrentSeconds
	}
	if input.UserPageCount != nil {
		entry.UserPageCount = input.UserPageCount
	}
	if input.UserAudioSeconds != nil {
		entry.UserAudioSeconds = input.UserAudioSeconds
	}
	if input.PersonalRating != nil {
		entry.PersonalRating = input.PersonalRating
	}
	if input.Notes != nil {
		entry.Notes = input.Notes
	}

	if err := service.repo.UpdateEntry(context, entry); err != nil {
		return nil, err
	}

	return service.decorate(context, entry), nil
}

func (service *Service) UpdateStatus(context context.Context, userID string, id int64, status Status) (*EntryView, error) {
	if !status.Valid() {
		return nil, validate.RequiredError(FieldStatus, "must be one of: want_to_read, currently_reading, read, did_not_finish")
	}

	entry, err := service.repo.GetEntry(context, userID, id)
	if err != nil {
		return nil, err
	}

	entry.Status = status
	service.applyStatusTimestamps(entry, status)

	if err := service.repo.UpdateEntry(context, entry); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "shelf_status_changed",
		slog.String("user_id", userID),
		slog.Int64("entry_id", id),
		slog.String("status", string(status)),
	)

	return service.decorate(context, entry), nil
}

func (service *Service) MarkDNF(context context.Context, userID string, id int64, reason *string) (*EntryView, error) {
	entry, err := service.repo.GetEntry(context, userID, id)
	if err != nil {
		return nil, err
	}

	entry.Status = StatusDidNotFinish
	service.applyStatusTimestamps(entry, StatusDidNotFinish)
	entry.DNFReason = reason

	if err := service.repo.UpdateEntry(context, entry); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "shelf_entry_dnf",
		slog.String("user_id", userID),
		slog.Int64("entry_id", id),
	)

	return service.decorate(context, entry), nil
}

func (service *Service) RemoveEntry(context context.Context, userID string, id int64) error {
	if err := service.repo.DeleteEntry(context, userID, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "shelf_entry_removed",
		slog.String("user_id", userID),
		slog.Int64("entry_id", id),
	)
	return nil
}

// applyStatusTimestamps stamps the lifecycle fields for a status transition.
//
// started_at is stamped once and survives re-reads; finished_at and the DNF
// fields belong to their terminal statuses and are cleared on the way out.
func (service *Service) applyStatusTimestamps(entry *Entry, status Status) {
	now := service.now()

	switch status {
	case StatusCurrentlyReading:
		if entry.StartedAt == nil {
			entry.StartedAt = &now
		}
		entry.FinishedAt = nil
		entry.DNFDate = nil
		entry.DNFReason = nil

	case StatusRead:
		if entry.StartedAt == nil {
			entry.StartedAt = &now
		}
		entry.FinishedAt = &now
		entry.DNFDate = nil
		entry.DNFReason = nil

	case StatusDidNotFinish:
		entry.FinishedAt = nil
		entry.DNFDate = &now
	}
}

// decorate attaches the catalog record and derived progress, degrading to a
// bare entry when the catalog is unreachable.
func (service *Service) decorate(context context.Context, entry *Entry) *EntryView {
	book, err := service.books.GetBook(context, entry.BookID)
	if err != nil {
		book = nil
	}

	return &EntryView{
		Entry:    *entry,
		Book:     book,
		Progress: ResolveProgress(entry, factsOf(book)),
	}
}

func factsOf(book *catalog.BookSummary) *catalog.BookFacts {
	if book == nil {
		return nil
	}
	return &book.Facts
}
