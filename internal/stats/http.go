package stats

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

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
	router.Get("/overview", handler.overview)
	router.Get("/time-series", handler.timeSeries)
	router.Get("/reading-methods", handler.readingMethods)
	router.Get("/genres", handler.genres)
	router.Get("/authors", handler.authors)
	router.Get("/streaks", handler.streaks)
	router.Get("/completion", handler.completion)
}

func (handler *Handler) overview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	overview, err := handler.service.Overview(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, overview)
}

func (handler *Handler) timeSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	period := Period(request.URL.Query().Get("period"))
	if period == "" {
		period = PeriodWeek
	}
	year, _ := strconv.Atoi(request.URL.Query().Get("year"))

	series, err := handler.service.TimeSeries(request.Context(), userID, period, year)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series)
}

func (handler *Handler) readingMethods(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	breakdown, err := handler.service.MethodBreakdown(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, breakdown)
}

func (handler *Handler) genres(writer http.ResponseWriter, request *http.Request) {
	handler.leaderboard(writer, request, handler.service.GenreLeaderboard)
}

func (handler *Handler) authors(writer http.ResponseWriter, request *http.Request) {
	handler.leaderboard(writer, request, handler.service.AuthorLeaderboard)
}

func (handler *Handler) leaderboard(writer http.ResponseWriter, request *http.Request, report func(context.Context, string, int) ([]GroupReport, error)) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit, _ := strconv.Atoi(request.URL.Query().Get("limit"))

	groups, err := report(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, groups)
}

func (handler *Handler) streaks(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	streaks, err := handler.service.StreaksReport(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, streaks)
}

func (handler *Handler) completion(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	completion, err := handler.service.CompletionReport(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, completion)
}
