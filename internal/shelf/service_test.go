package shelf

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safegergis/tome/internal/catalog"
	"github.com/safegergis/tome/internal/platform/apperr"
	"github.com/safegergis/tome/pkg/pointer"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	entries map[int64]*Entry
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[int64]*Entry), nextID: 1}
}

func (repo *fakeRepo) ListEntries(_ context.Context, userID string, status *Status, limit, offset int) ([]*Entry, int, error) {
	var matched []*Entry
	for _, entry := range repo.entries {
		if entry.UserID != userID {
			continue
		}
		if status != nil && entry.Status != *status {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepo) GetEntry(_ context.Context, userID string, id int64) (*Entry, error) {
	entry, ok := repo.entries[id]
	if !ok || entry.UserID != userID {
		return nil, apperr.NotFound("Resource")
	}
	copied := *entry
	return &copied, nil
}

func (repo *fakeRepo) GetEntryByBook(_ context.Context, userID string, bookID int64) (*Entry, error) {
	for _, entry := range repo.entries {
		if entry.UserID == userID && entry.BookID == bookID {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Resource")
}

func (repo *fakeRepo) CreateEntry(_ context.Context, entry *Entry) error {
	for _, existing := range repo.entries {
		if existing.UserID == entry.UserID && existing.BookID == entry.BookID {
			return apperr.Conflict("Resource already exists")
		}
	}
	entry.ID = repo.nextID
	repo.nextID++
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	copied := *entry
	repo.entries[entry.ID] = &copied
	return nil
}

func (repo *fakeRepo) UpdateEntry(_ context.Context, entry *Entry) error {
	if _, ok := repo.entries[entry.ID]; !ok {
		return apperr.NotFound("Resource")
	}
	copied := *entry
	repo.entries[entry.ID] = &copied
	return nil
}

func (repo *fakeRepo) DeleteEntry(_ context.Context, userID string, id int64) error {
	entry, ok := repo.entries[id]
	if !ok || entry.UserID != userID {
		return apperr.NotFound("Resource")
	}
	delete(repo.entries, id)
	return nil
}

// fakeCatalog serves scripted book records, or fails entirely.
type fakeCatalog struct {
	books map[int64]*catalog.BookSummary
	down  bool
}

func (c *fakeCatalog) GetBook(_ context.Context, bookID int64) (*catalog.BookSummary, error) {
	if c.down {
		return nil, apperr.UpstreamUnavailable("catalog", nil)
	}
	if book, ok := c.books[bookID]; ok {
		return book, nil
	}
	return nil, apperr.NotFound("Book")
}

func (c *fakeCatalog) GetBooks(_ context.Context, bookIDs []int64) map[int64]*catalog.BookSummary {
	resolved := make(map[int64]*catalog.BookSummary)
	if c.down {
		return resolved
	}
	for _, id := range bookIDs {
		if book, ok := c.books[id]; ok {
			resolved[id] = book
		}
	}
	return resolved
}

func newTestService(repo Repository, books Catalog) (*Service, time.Time) {
	service := NewService(repo, books, slog.Default())
	frozen := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return frozen }
	return service, frozen
}

func TestService_EntryForBook(t *testing.T) {
	repo := newFakeRepo()
	service, _ := newTestService(repo, &fakeCatalog{})

	created, err := service.AddBook(context.Background(), "u1", AddInput{BookID: 7})
	require.NoError(t, err)

	view, err := service.EntryForBook(context.Background(), "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)

	_, err = service.EntryForBook(context.Background(), "u1", 8)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.EntryForBook(context.Background(), "someone-else", 7)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_AddBook_Defaults(t *testing.T) {
	repo := newFakeRepo()
	service, _ := newTestService(repo, &fakeCatalog{})

	view, err := service.AddBook(context.Background(), "u1", AddInput{BookID: 7})

	require.NoError(t, err)
	assert.Equal(t, StatusWantToRead, view.Status)
	assert.Nil(t, view.StartedAt)
	assert.Equal(t, UnitNone, view.Progress.Unit)
}

func TestService_AddBook_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input AddInput
	}{
		{"missing_book_id", AddInput{}},
		{"unknown_status", AddInput{BookID: 1, Status: Status("abandoned")}},
		{"rating_out_of_range", AddInput{BookID: 1, PersonalRating: pointer.To(6)}},
		{"zero_page_override", AddInput{BookID: 1, UserPageCount: pointer.To(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(newFakeRepo(), &fakeCatalog{})

			_, err := service.AddBook(context.Background(), "u1", tt.input)

			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestService_AddBook_DuplicateConflicts(t *testing.T) {
	repo := newFakeRepo()
	service, _ := newTestService(repo, &fakeCatalog{})

	_, err := service.AddBook(context.Background(), "u1", AddInput{BookID: 7})
	require.NoError(t, err)

	_, err = service.AddBook(context.Background(), "u1", AddInput{BookID: 7})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_UpdateStatus_Timestamps(t *testing.T) {
	repo := newFakeRepo()
	service, frozen := newTestService(repo, &fakeCatalog{})

	view, err := service.AddBook(context.Background(), "u1", AddInput{BookID: 7})
	require.NoError(t, err)

	// want_to_read → currently_reading stamps started_at
	view, err = service.UpdateStatus(context.Background(), "u1", view.ID, StatusCurrentlyReading)
	require.NoError(t, err)
	require.NotNil(t, view.StartedAt)
	assert.Equal(t, frozen, *view.StartedAt)
	assert.Nil(t, view.FinishedAt)

	// currently_reading → read stamps finished_at, keeps started_at
	view, err = service.UpdateStatus(context.Background(), "u1", view.ID, StatusRead)
	require.NoError(t, err)
	assert.Equal(t, frozen, *view.StartedAt)
	require.NotNil(t, view.FinishedAt)
	assert.Equal(t, frozen, *view.FinishedAt)

	// read → currently_reading (re-read) clears finished_at
	view, err = service.UpdateStatus(context.Background(), "u1", view.ID, StatusCurrentlyReading)
	require.NoError(t, err)
	assert.Nil(t, view.FinishedAt)
	assert.NotNil(t, view.StartedAt)
}

func TestService_MarkDNF(t *testing.T) {
	repo := newFakeRepo()
	service, frozen := newTestService(repo, &fakeCatalog{})

	view, err := service.AddBook(context.Background(), "u1", AddInput{BookID: 7, Status: StatusCurrentlyReading})
	require.NoError(t, err)

	view, err = service.MarkDNF(context.Background(), "u1", view.ID, pointer.To("lost interest"))
	require.NoError(t, err)

	assert.Equal(t, StatusDidNotFinish, view.Status)
	require.NotNil(t, view.DNFDate)
	assert.Equal(t, frozen, *view.DNFDate)
	assert.Equal(t, "lost interest", *view.DNFReason)
	assert.Nil(t, view.FinishedAt)
}

func TestService_GetEntry_OwnershipIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	service, _ := newTestService(repo, &fakeCatalog{})

	view, err := service.AddBook(context.Background(), "u1", AddInput{BookID: 7})
	require.NoError(t, err)

	_, err = service.GetEntry(context.Background(), "someone-else", view.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_Decoration_DegradesWhenCatalogDown(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeCatalog{down: true}
	service, _ := newTestService(repo, books)

	view, err := service.AddBook(context.Background(), "u1", AddInput{
		BookID:        7,
		UserPageCount: pointer.To(200),
	})

	require.NoError(t, err)
	assert.Nil(t, view.Book)
	// User override still resolves progress without the catalog
	assert.Equal(t, UnitPages, view.Progress.Unit)
	assert.Equal(t, 200, view.Progress.EffectiveTarget)
}

func TestService_ListEntries_DecoratesFromCatalog(t *testing.T) {
	repo := newFakeRepo()
	books := &fakeCatalog{books: map[int64]*catalog.BookSummary{
		7: {ID: 7, Title: "The Left Hand of Darkness", Facts: catalog.BookFacts{PageCount: pointer.To(304)}},
	}}
	service, _ := newTestService(repo, books)

	_, err := service.AddBook(context.Background(), "u1", AddInput{BookID: 7})
	require.NoError(t, err)

	views, total, err := service.ListEntries(context.Background(), "u1", nil, 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.NotNil(t, views[0].Book)
	assert.Equal(t, "The Left Hand of Darkness", views[0].Book.Title)
	assert.Equal(t, 304, views[0].Progress.EffectiveTarget)
}
