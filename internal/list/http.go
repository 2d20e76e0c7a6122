package list

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/safegergis/tome/internal/platform/apperr"
	requestutil "github.com/safegergis/tome/internal/platform/request"
	"github.com/safegergis/tome/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listLists)
	router.Post("/", handler.createList)
	router.Get("/default/{type}", handler.getDefault)
	router.Get("/{id}", handler.getList)
	router.Patch("/{id}", handler.updateList)
	router.Delete("/{id}", handler.deleteList)
	router.Post("/{id}/books", handler.addBook)
	router.Delete("/{id}/books/{bookId}", handler.removeBook)
	router.Put("/{id}/order", handler.reorder)
}

// RegisterProvisioning mounts the service-to-service hook that creates a new
// user's default lists.
func (handler *Handler) RegisterProvisioning(router chi.Router) {
	router.Post("/users/{id}/default-lists", handler.provisionDefaults)
}

func (handler *Handler) listLists(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.service.ListLists(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, views)
}

func (handler *Handler) createList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.CreateList(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view)
}

func (handler *Handler) getList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listID, err := requestutil.Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetList(request.Context(), userID, listID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) updateList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listID, err := requestutil.Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.UpdateList(request.Context(), userID, listID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) deleteList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listID, err := requestutil.Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteList(request.Context(), userID, listID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) addBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listID, err := requestutil.Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		BookID int64 `json:"book_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	membership, err := handler.service.AddBook(request.Context(), userID, listID, input.BookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, membership)
}

func (handler *Handler) removeBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listID, err := requestutil.Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.ID(request, "bookId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveBook(request.Context(), userID, listID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) reorder(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listID, err := requestutil.Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		BookIDs []int64 `json:"book_ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Reorder(request.Context(), userID, listID, input.BookIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) getDefault(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listType, err := requestutil.Param(request, "type")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetDefault(request.Context(), userID, Type(listType))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) provisionDefaults(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID, err := requestutil.Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The hook runs under a token minted for the new account; a caller
	// cannot provision lists on someone else's behalf.
	if claims.UserID != targetID {
		respond.Error(writer, request, apperr.Forbidden("Cannot provision lists for another user"))
		return
	}

	views, err := handler.service.ProvisionDefaults(request.Context(), targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, views)
}
