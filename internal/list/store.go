package list

import "context"

/*
Repository defines persistence for book lists and their memberships.

Soft deletion: deleted lists keep their rows with deletedat set and are
invisible to every read here. ProvisionDefaults and Reorder run inside a
single transaction.
*/
type Repository interface {
	// ListLists returns the owner's non-deleted lists with their book counts,
	// newest first.
	ListLists(context context.Context, userID string) ([]*List, map[string]int, error)

	// GetList fetches one non-deleted list by ID regardless of owner.
	// Visibility enforcement is the service's job.
	GetList(context context.Context, listID string) (*List, error)

	// GetDefault fetches the owner's default list of the given type.
	GetDefault(context context.Context, userID string, listType Type) (*List, error)

	CreateList(context context.Context, list *List) error
	UpdateList(context context.Context, list *List) error

	// SoftDeleteList marks the list deleted and clears its memberships.
	SoftDeleteList(context context.Context, userID, listID string) error

	// ProvisionDefaults inserts the given lists in one transaction. A
	// duplicate default surfaces as a conflict from the partial unique index.
	ProvisionDefaults(context context.Context, lists []*List) error

	// ListBooks returns the list's memberships ordered by position.
	ListBooks(context context.Context, listID string) ([]*Membership, error)

	// AddBook appends the book at the next free position.
	AddBook(context context.Context, listID string, bookID int64) (*Membership, error)

	RemoveBook(context context.Context, listID string, bookID int64) error

	// Reorder rewrites positions 1..n following the order of bookIDs.
	Reorder(context context.Context, listID string, bookIDs []int64) error
}
