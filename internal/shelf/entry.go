package shelf

import (
	"time"

	"github.com/safegergis/tome/internal/catalog"
)

// Status is the reading status of a shelf entry.
type Status string

const (
	StatusWantToRead       Status = "want_to_read"
	StatusCurrentlyReading Status = "currently_reading"
	StatusRead             Status = "read"
	StatusDidNotFinish     Status = "did_not_finish"
)

// Statuses lists every valid status value, for validation.
var Statuses = []string{
	string(StatusWantToRead),
	string(StatusCurrentlyReading),
	string(StatusRead),
	string(StatusDidNotFinish),
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusWantToRead, StatusCurrentlyReading, StatusRead, StatusDidNotFinish:
		return true
	}
	return false
}

// Entry is a user's relationship with a single book: status, progress
// counters, a personal rating, and lifecycle timestamps. One entry per
// (user, book).
type Entry struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
	BookID int64  `json:"book_id"`
	Status Status `json:"status"`

	// Progress counters. Pages and seconds advance independently because a
	// reader may switch between a print copy and the audiobook.
	CurrentPage    int `json:"current_page"`
	CurrentSeconds int `json:"current_seconds"`

	// Per-user overrides for edition differences. When set they take
	// priority over the catalog's numbers.
	UserPageCount    *int `json:"user_page_count"`
	UserAudioSeconds *int `json:"user_audio_length_seconds"`

	PersonalRating *int    `json:"personal_rating"`
	Notes          *string `json:"notes"`

	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	DNFDate    *time.Time `json:"dnf_date"`
	DNFReason  *string    `json:"dnf_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryView is an [Entry] decorated with catalog data and derived progress.
type EntryView struct {
	Entry
	Book     *catalog.BookSummary `json:"book,omitempty"`
	Progress EffectiveProgress    `json:"progress"`
}

// Global field names for validation
const (
	FieldBookID           = "book_id"
	FieldStatus           = "status"
	FieldCurrentPage      = "current_page"
	FieldCurrentSeconds   = "current_seconds"
	FieldUserPageCount    = "user_page_count"
	FieldUserAudioSeconds = "user_audio_length_seconds"
	FieldPersonalRating   = "personal_rating"
	FieldDNFReason        = "dnf_reason"
)
