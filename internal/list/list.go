package list

import (
	"time"

	"github.com/safegergis/tome/internal/catalog"
)

// Type distinguishes user-created lists from the system-managed defaults.
type Type string

const (
	TypeCustom           Type = "custom"
	TypeCurrentlyReading Type = "currently_reading"
	TypeToBeRead         Type = "to_be_read"
)

// DefaultTypes are the list types provisioned automatically for every user.
var DefaultTypes = []Type{TypeCurrentlyReading, TypeToBeRead}

// Valid reports whether t is a known list type.
func (t Type) Valid() bool {
	switch t {
	case TypeCustom, TypeCurrentlyReading, TypeToBeRead:
		return true
	}
	return false
}

// Default reports whether t is a system-managed default type.
func (t Type) Default() bool {
	return t == TypeCurrentlyReading || t == TypeToBeRead
}

// DefaultName is the display name given to a provisioned default list.
func (t Type) DefaultName() string {
	switch t {
	case TypeCurrentlyReading:
		return "Currently Reading"
	case TypeToBeRead:
		return "To Be Read"
	}
	return ""
}

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// List is a named, ordered collection of books. Default lists are created by
// the provisioning hook and cannot be renamed or deleted; deletion of custom
// lists is a soft delete.
type List struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description"`
	ListType    Type       `json:"list_type"`
	Visibility  Visibility `json:"visibility"`
	IsDefault   bool       `json:"is_default"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Membership is one book's placement on a list. Positions are 1-based and
// contiguous within a list.
type Membership struct {
	ListID   string    `json:"list_id"`
	BookID   int64     `json:"book_id"`
	Position int       `json:"position"`
	AddedAt  time.Time `json:"added_at"`
}

// View is a list summary decorated with its owner's display name.
type View struct {
	List
	OwnerUsername string `json:"owner_username"`
	BookCount     int    `json:"book_count"`
}

// BookRow is one membership joined with its catalog summary. Book is nil
// when the catalog cannot resolve it right now.
type BookRow struct {
	BookID   int64                `json:"book_id"`
	Position int                  `json:"position"`
	AddedAt  time.Time            `json:"added_at"`
	Book     *catalog.BookSummary `json:"book"`
}

// DetailView is the full list payload returned by single-list reads.
type DetailView struct {
	List
	OwnerUsername string    `json:"owner_username"`
	Books         []BookRow `json:"books"`
}

// Field names used in validation errors.
const (
	FieldName       = "name"
	FieldVisibility = "visibility"
	FieldBookID     = "book_id"
	FieldBookIDs    = "book_ids"
	FieldListType   = "list_type"
)
