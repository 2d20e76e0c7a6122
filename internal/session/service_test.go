package session

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

// fakeRepo records sessions in memory. The progress fold is a pure function
// with its own table test; these tests cover validation and decoration.
type fakeRepo struct {
	sessions map[int64]*Session
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[int64]*Session), nextID: 1}
}

func (repo *fakeRepo) CreateSession(_ context.Context, session *Session) error {
	session.ID = repo.nextID
	repo.nextID++
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	copied := *session
	repo.sessions[session.ID] = &copied
	return nil
}

func (repo *fakeRepo) GetSession(_ context.Context, userID string, id int64) (*Session, error) {
	session, ok := repo.sessions[id]
	if !ok || session.UserID != userID {
		return nil, apperr.NotFound("Resource")
	}
	copied := *session
	return &copied, nil
}

func (repo *fakeRepo) ListRecent(_ context.Context, userID string, limit int) ([]*Session, error) {
	var matched []*Session
	for _, session := range repo.sessions {
		if session.UserID == userID {
			matched = append(matched, session)
		}
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (repo *fakeRepo) ListForBook(_ context.Context, userID string, bookID int64) ([]*Session, error) {
	var matched []*Session
	for _, session := range repo.sessions {
		if session.UserID == userID && session.BookID == bookID {
			matched = append(matched, session)
		}
	}
	return matched, nil
}

func (repo *fakeRepo) UpdateNotes(_ context.Context, userID string, id int64, notes *string) (*Session, error) {
	session, ok := repo.sessions[id]
	if !ok || session.UserID != userID {
		return nil, apperr.NotFound("Resource")
	}
	session.Notes = notes
	copied := *session
	return &copied, nil
}

func (repo *fakeRepo) DeleteSession(_ context.Context, userID string, id int64) error {
	session, ok := repo.sessions[id]
	if !ok || session.UserID != userID {
		return apperr.NotFound("Resource")
	}
	delete(repo.sessions, id)
	return nil
}

type fakeCatalog struct{}

func (c *fakeCatalog) GetBook(_ context.Context, bookID int64) (*catalog.BookSummary, error) {
	return &catalog.BookSummary{ID: bookID, Title: "Some Book"}, nil
}

func (c *fakeCatalog) GetBooks(_ context.Context, bookIDs []int64) map[int64]*catalog.BookSummary {
	resolved := make(map[int64]*catalog.BookSummary)
	for _, id := range bookIDs {
		resolved[id] = &catalog.BookSummary{ID: id, Title: "Some Book"}
	}
	return resolved
}

func newTestService(repo Repository) *Service {
	service := NewService(repo, &fakeCatalog{}, slog.Default())
	service.now = func() time.Time {
		return time.Date(2026, 4, 10, 15, 30, 0, 0, time.UTC)
	}
	return service
}

func TestService_Log_ValidationMatrix(t *testing.T) {
	tests := []struct {
		name    string
		input   LogInput
		wantErr bool
	}{
		{
			name:    "physical_with_pages",
			input:   LogInput{BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(30)},
			wantErr: false,
		},
		{
			name:    "ebook_with_pages",
			input:   LogInput{BookID: 1, Method: MethodEbook, PagesRead: pointer.To(12)},
			wantErr: false,
		},
		{
			name:    "audiobook_with_minutes",
			input:   LogInput{BookID: 1, Method: MethodAudiobook, MinutesRead: pointer.To(45)},
			wantErr: false,
		},
		{
			name:    "audiobook_pages_but_no_minutes",
			input:   LogInput{BookID: 1, Method: MethodAudiobook, PagesRead: pointer.To(30)},
			wantErr: true,
		},
		{
			name:    "physical_without_pages",
			input:   LogInput{BookID: 1, Method: MethodPhysical},
			wantErr: true,
		},
		{
			name:    "physical_with_zero_pages",
			input:   LogInput{BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(0)},
			wantErr: true,
		},
		{
			name:    "unknown_method",
			input:   LogInput{BookID: 1, Method: Method("braille"), PagesRead: pointer.To(10)},
			wantErr: true,
		},
		{
			name: "end_page_not_after_start",
			input: LogInput{
				BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(10),
				StartPage: pointer.To(40), EndPage: pointer.To(40),
			},
			wantErr: true,
		},
		{
			name: "valid_page_range",
			input: LogInput{
				BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(30),
				StartPage: pointer.To(10), EndPage: pointer.To(40),
			},
			wantErr: false,
		},
		{
			name:    "missing_book_id",
			input:   LogInput{Method: MethodPhysical, PagesRead: pointer.To(30)},
			wantErr: true,
		},
		{
			name:    "negative_minutes",
			input:   LogInput{BookID: 1, Method: MethodAudiobook, MinutesRead: pointer.To(-5)},
			wantErr: true,
		},
		{
			name: "future_session_date",
			input: LogInput{
				BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(30),
				SessionDate: pointer.To("2026-04-11"),
			},
			wantErr: true,
		},
		{
			name: "past_session_date",
			input: LogInput{
				BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(30),
				SessionDate: pointer.To("2026-04-01"),
			},
			wantErr: false,
		},
		{
			name: "garbage_session_date",
			input: LogInput{
				BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(30),
				SessionDate: pointer.To("next tuesday"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepo())

			_, err := service.Log(context.Background(), "u1", tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestService_Log_DateDefaultsToToday(t *testing.T) {
	service := newTestService(newFakeRepo())

	view, err := service.Log(context.Background(), "u1", LogInput{
		BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(20),
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-04-10", view.SessionDate.Format("2006-01-02"))
}

func TestService_Get_OwnershipIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	view, err := service.Log(context.Background(), "u1", LogInput{
		BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(20),
	})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), "intruder", view.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_Recent_ClampsLimit(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	for i := 0; i < 120; i++ {
		_, err := service.Log(context.Background(), "u1", LogInput{
			BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(5),
		})
		require.NoError(t, err)
	}

	views, err := service.Recent(context.Background(), "u1", 5000)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(views), 100)
}

func TestService_UpdateNotes(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	view, err := service.Log(context.Background(), "u1", LogInput{
		BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(20),
	})
	require.NoError(t, err)

	updated, err := service.UpdateNotes(context.Background(), "u1", view.ID, pointer.To("finally hooked"))

	require.NoError(t, err)
	assert.Equal(t, "finally hooked", *updated.Notes)
}

func TestService_Delete_LeavesLedgerOnly(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	view, err := service.Log(context.Background(), "u1", LogInput{
		BookID: 1, Method: MethodPhysical, PagesRead: pointer.To(20),
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "u1", view.ID))

	_, err = service.Get(context.Background(), "u1", view.ID)
	assert.True(t, apperr.IsNotFound(err))
}
