package list

import (
	"context"
	"log/slog"

	"github.com/safegergis/tome/internal/catalog"
	"github.com/safegergis/tome/internal/identity"
	"github.com/safegergis/tome/internal/platform/apperr"
	"github.com/safegergis/tome/internal/platform/validate"
	"github.com/safegergis/tome/pkg/slug"
	"github.com/safegergis/tome/pkg/uuidv7"
)

// maxNameLen bounds list names.
const maxNameLen = 120

// UserResolver supplies owner display names. The identity shim never fails;
// it degrades to a placeholder user.
type UserResolver interface {
	GetUser(context context.Context, userID string) *identity.User
}

// Catalog is the slice of the catalog client used to decorate list books.
type Catalog interface {
	GetBooks(context context.Context, bookIDs []int64) map[int64]*catalog.BookSummary
}

type Service struct {
	repo   Repository
	users  UserResolver
	books  Catalog
	logger *slog.Logger
}

func NewService(repo Repository, users UserResolver, books Catalog, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, books: books, logger: logger}
}

type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Visibility  string  `json:"visibility"`
}

type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
}

// CreateList creates a custom list. Default lists are never created here;
// they come from provisioning.
func (service *Service) CreateList(context context.Context, userID string, input CreateInput) (*View, error) {
	if input.Visibility == "" {
		input.Visibility = string(VisibilityPrivate)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, maxNameLen).
		OneOf(FieldVisibility, input.Visibility, string(VisibilityPublic), string(VisibilityPrivate))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	list := &List{
		ID:          uuidv7.New(),
		UserID:      userID,
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		ListType:    TypeCustom,
		Visibility:  Visibility(input.Visibility),
	}

	if err := service.repo.CreateList(context, list); err != nil {
		return nil, err
	}

	service.logger.Info("list_created", "list_id", list.ID, "user_id", userID)
	return service.view(context, list, 0), nil
}

// ListLists returns the caller's lists, newest first.
func (service *Service) ListLists(context context.Context, userID string) ([]View, error) {
	lists, counts, err := service.repo.ListLists(context, userID)
	if err != nil {
		return nil, err
	}

	owner := service.users.GetUser(context, userID)

	views := make([]View, 0, len(lists))
	for _, list := range lists {
		views = append(views, View{List: *list, OwnerUsername: owner.Username, BookCount: counts[list.ID]})
	}
	return views, nil
}

// GetList returns the full list payload. Private lists owned by someone else
// are indistinguishable from missing ones.
func (service *Service) GetList(context context.Context, viewerID, listID string) (*DetailView, error) {
	list, err := service.repo.GetList(context, listID)
	if err != nil {
		return nil, err
	}

	if list.Visibility == VisibilityPrivate && list.UserID != viewerID {
		return nil, apperr.NotFound("List")
	}

	memberships, err := service.repo.ListBooks(context, listID)
	if err != nil {
		return nil, err
	}

	bookIDs := make([]int64, 0, len(memberships))
	for _, membership := range memberships {
		bookIDs = append(bookIDs, membership.BookID)
	}
	books := service.books.GetBooks(context, bookIDs)

	rows := make([]BookRow, 0, len(memberships))
	for _, membership := range memberships {
		rows = append(rows, BookRow{
			BookID:   membership.BookID,
			Position: membership.Position,
			AddedAt:  membership.AddedAt,
			Book:     books[membership.BookID],
		})
	}

	owner := service.users.GetUser(context, list.UserID)
	return &DetailView{List: *list, OwnerUsername: owner.Username, Books: rows}, nil
}

// UpdateList applies a partial update. Default lists cannot be renamed.
func (service *Service) UpdateList(context context.Context, userID, listID string, input UpdateInput) (*View, error) {
	list, err := service.loadOwned(context, userID, listID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if list.IsDefault {
			return nil, apperr.Forbidden("Default lists cannot be renamed")
		}
		validator := &validate.Validator{}
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, maxNameLen)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		list.Name = *input.Name
		list.Slug = slug.From(*input.Name)
	}

	if input.Description != nil {
		list.Description = input.Description
	}

	if input.Visibility != nil {
		visibility := Visibility(*input.Visibility)
		if !visibility.Valid() {
			return nil, validate.RequiredError(FieldVisibility, "must be one of: public, private")
		}
		list.Visibility = visibility
	}

	if err := service.repo.UpdateList(context, list); err != nil {
		return nil, err
	}

	return service.view(context, list, -1), nil
}

// DeleteList soft-deletes a custom list. Default lists cannot be deleted.
func (service *Service) DeleteList(context context.Context, userID, listID string) error {
	list, err := service.loadOwned(context, userID, listID)
	if err != nil {
		return err
	}

	if list.IsDefault {
		return apperr.Forbidden("Default lists cannot be deleted")
	}

	if err := service.repo.SoftDeleteList(context, userID, listID); err != nil {
		return err
	}

	service.logger.Info("list_deleted", "list_id", listID, "user_id", userID)
	return nil
}

// AddBook appends a book to the end of the list. Adding a book that is
// already on the list is a conflict.
func (service *Service) AddBook(context context.Context, userID, listID string, bookID int64) (*Membership, error) {
	if bookID <= 0 {
		return nil, validate.RequiredError(FieldBookID, "must be a positive integer")
	}

	if _, err := service.loadOwned(context, userID, listID); err != nil {
		return nil, err
	}

	return service.repo.AddBook(context, listID, bookID)
}

func (service *Service) RemoveBook(context context.Context, userID, listID string, bookID int64) error {
	if _, err := service.loadOwned(context, userID, listID); err != nil {
		return err
	}

	return service.repo.RemoveBook(context, listID, bookID)
}

// Reorder rewrites the list's positions to follow bookIDs. The input must be
// a permutation of the current membership.
func (service *Service) Reorder(context context.Context, userID, listID string, bookIDs []int64) error {
	if len(bookIDs) == 0 {
		return validate.RequiredError(FieldBookIDs, "must not be empty")
	}

	if _, err := service.loadOwned(context, userID, listID); err != nil {
		return err
	}

	memberships, err := service.repo.ListBooks(context, listID)
	if err != nil {
		return err
	}

	current := make(map[int64]struct{}, len(memberships))
	for _, membership := range memberships {
		current[membership.BookID] = struct{}{}
	}

	if len(bookIDs) != len(current) {
		return validate.RequiredError(FieldBookIDs, "must contain every book on the list exactly once")
	}
	seen := make(map[int64]struct{}, len(bookIDs))
	for _, bookID := range bookIDs {
		if _, member := current[bookID]; !member {
			return validate.RequiredError(FieldBookIDs, "must contain every book on the list exactly once")
		}
		if _, dup := seen[bookID]; dup {
			return validate.RequiredError(FieldBookIDs, "must contain every book on the list exactly once")
		}
		seen[bookID] = struct{}{}
	}

	return service.repo.Reorder(context, listID, bookIDs)
}

// GetDefault returns the caller's default list of the given type, creating
// it on the fly for accounts provisioned before defaults existed.
func (service *Service) GetDefault(context context.Context, userID string, listType Type) (*DetailView, error) {
	if !listType.Default() {
		return nil, validate.RequiredError(FieldListType, "must be one of: currently_reading, to_be_read")
	}

	existing, err := service.repo.GetDefault(context, userID, listType)
	if apperr.IsNotFound(err) {
		fallback := defaultList(userID, listType)
		if createErr := service.repo.ProvisionDefaults(context, []*List{fallback}); createErr != nil {
			// A concurrent provision may have won the race; re-read.
			existing, err = service.repo.GetDefault(context, userID, listType)
		} else {
			service.logger.Info("default_list_backfilled", "user_id", userID, "list_type", listType)
			existing, err = fallback, nil
		}
	}
	if err != nil {
		return nil, err
	}

	return service.GetList(context, userID, existing.ID)
}

// ProvisionDefaults creates both default lists for a new user in one
// transaction. A repeat call conflicts; the caller treats that as
// already-provisioned.
func (service *Service) ProvisionDefaults(context context.Context, userID string) ([]View, error) {
	lists := make([]*List, 0, len(DefaultTypes))
	for _, listType := range DefaultTypes {
		lists = append(lists, defaultList(userID, listType))
	}

	if err := service.repo.ProvisionDefaults(context, lists); err != nil {
		return nil, err
	}

	service.logger.Info("default_lists_provisioned", "user_id", userID)

	owner := service.users.GetUser(context, userID)
	views := make([]View, 0, len(lists))
	for _, list := range lists {
		views = append(views, View{List: *list, OwnerUsername: owner.Username})
	}
	return views, nil
}

// loadOwned fetches a list and enforces ownership. Someone else's list is
// reported as missing, not forbidden.
func (service *Service) loadOwned(context context.Context, userID, listID string) (*List, error) {
	list, err := service.repo.GetList(context, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, apperr.NotFound("List")
	}
	return list, nil
}

// view decorates a single list. bookCount < 0 means unknown and is reported
// by a fresh membership read.
func (service *Service) view(context context.Context, list *List, bookCount int) *View {
	if bookCount < 0 {
		memberships, err := service.repo.ListBooks(context, list.ID)
		if err == nil {
			bookCount = len(memberships)
		} else {
			bookCount = 0
		}
	}

	owner := service.users.GetUser(context, list.UserID)
	return &View{List: *list, OwnerUsername: owner.Username, BookCount: bookCount}
}

// defaultList builds one of the two system lists created for every new
// account. Defaults ship publicly visible; owners can flip them private.
func defaultList(userID string, listType Type) *List {
	name := listType.DefaultName()
	return &List{
		ID:         uuidv7.New(),
		UserID:     userID,
		Name:       name,
		Slug:       slug.From(name),
		ListType:   listType,
		Visibility: VisibilityPublic,
		IsDefault:  true,
	}
}
