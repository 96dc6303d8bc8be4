// AngelaMos | 2026
// handler.go

package browse

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/middleware"
	"github.com/carterperez-dev/dealership/internal/vehicle"
)

type CarSource interface {
	List(ctx context.Context) ([]vehicle.Car, error)
	Get(ctx context.Context, id string) (*vehicle.Car, error)
}

type BookmarkChecker interface {
	IsBookmarked(ctx context.Context, userID, carID string) (bool, error)
}

type Handler struct {
	cars      CarSource
	bookmarks BookmarkChecker
}

func NewHandler(cars CarSource, bookmarks BookmarkChecker) *Handler {
	return &Handler{cars: cars, bookmarks: bookmarks}
}

// RegisterRoutes mounts the public listing behind identify, which attaches a
// principal when the caller sent one, and the detail page behind
// authenticator.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	identify func(http.Handler) http.Handler,
) {
	r.Route("/browse", func(r chi.Router) {
		r.With(identify).Get("/", h.List)
		r.With(authenticator).Get("/{id}", h.Get)
	})
}

type PageResponse struct {
	Cars          []vehicle.Car `json:"cars"`
	Page          int           `json:"page"`
	PageSize      int           `json:"page_size"`
	Total         int           `json:"total"`
	TotalPages    int           `json:"total_pages"`
	Sort          string        `json:"sort"`
	Facets        Facets        `json:"facets"`
	ActiveFilters int           `json:"active_filters"`
	Bookmarked    []string      `json:"bookmarked,omitempty"`
}

type DetailResponse struct {
	Car        *vehicle.Car `json:"car"`
	Bookmarked bool         `json:"bookmarked"`
}

// Result is one evaluated browse query.
type Result struct {
	Cars       []vehicle.Car
	Total      int
	TotalPages int
	Page       int
}

// Run filters, sorts and paginates an inventory snapshot that is ordered
// newest first. The snapshot is left untouched.
func Run(inventory []vehicle.Car, f Filters, sortKey string, page, pageSize int) Result {
	matched := Sort(Apply(inventory, f), sortKey)
	if page < 1 {
		page = 1
	}
	return Result{
		Cars:       core.Paginate(matched, page, pageSize),
		Total:      len(matched),
		TotalPages: core.TotalPages(len(matched), pageSize),
		Page:       page,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters, err := ParseFilters(q)
	if err != nil {
		core.BadRequest(w, "Invalid filter value")
		return
	}

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}
	sortKey := NormalizeSort(q.Get("sort"))

	inventory, err := h.cars.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	result := Run(inventory, filters, sortKey, page, core.BrowsePageSize)

	var bookmarked []string
	if middleware.IsAuthenticated(r.Context()) {
		bookmarked, err = h.bookmarkedOnPage(r.Context(), middleware.GetUserID(r.Context()), result.Cars)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
	}

	core.OK(w, PageResponse{
		Cars:          result.Cars,
		Page:          result.Page,
		PageSize:      core.BrowsePageSize,
		Total:         result.Total,
		TotalPages:    result.TotalPages,
		Sort:          sortKey,
		Facets:        ExtractFacets(inventory),
		ActiveFilters: filters.ActiveCount(),
		Bookmarked:    bookmarked,
	})
}

func (h *Handler) bookmarkedOnPage(
	ctx context.Context,
	userID string,
	cars []vehicle.Car,
) ([]string, error) {
	var ids []string
	for _, car := range cars {
		ok, err := h.bookmarks.IsBookmarked(ctx, userID, car.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, car.ID)
		}
	}
	return ids, nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	car, err := h.cars.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Car")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	bookmarked, err := h.bookmarks.IsBookmarked(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, DetailResponse{Car: car, Bookmarked: bookmarked})
}
