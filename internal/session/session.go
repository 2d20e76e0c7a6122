package session

import (
	"time"

	"github.com/safegergis/tome/internal/catalog"
)

// Method is how the reading happened.
type Method string

const (
	MethodPhysical  Method = "physical"
	MethodEbook     Method = "ebook"
	MethodAudiobook Method = "audiobook"
)

// Methods lists every valid reading method, for validation.
var Methods = []string{
	string(MethodPhysical),
	string(MethodEbook),
	string(MethodAudiobook),
}

// Valid reports whether m is a known reading method.
func (m Method) Valid() bool {
	switch m {
	case MethodPhysical, MethodEbook, MethodAudiobook:
		return true
	}
	return false
}

// Session is one logged reading or listening event. Sessions are immutable
// once created, except for notes edits, and are joined to the shelf entry by
// (user_id, book_id) rather than a foreign key.
type Session struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
	BookID int64  `json:"book_id"`
	Method Method `json:"reading_method"`

	// SessionDate is a calendar date; the time component is always midnight UTC.
	SessionDate time.Time `json:"session_date"`

	PagesRead   *int `json:"pages_read"`
	MinutesRead *int `json:"minutes_read"`
	StartPage   *int `json:"start_page"`
	EndPage     *int `json:"end_page"`

	Notes *string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View is a [Session] decorated with the catalog's book record.
type View struct {
	Session
	Book *catalog.BookSummary `json:"book,omitempty"`
}

// Global field names for validation
const (
	FieldBookID      = "book_id"
	FieldMethod      = "reading_method"
	FieldSessionDate = "session_date"
	FieldPagesRead   = "pages_read"
	FieldMinutesRead = "minutes_read"
	FieldStartPage   = "start_page"
	FieldEndPage     = "end_page"
)
