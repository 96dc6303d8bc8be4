// AngelaMos | 2026
// handler.go

package vehicle

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/cars", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequireAdmin("Only admins can add cars")).
			Post("/", h.Create)
		r.With(middleware.RequireAdmin("Only admins can view all cars")).
			Get("/list", h.List)

		r.Route("/{id}", func(r chi.Router) {
			r.With(middleware.RequireAdmin("Only admins can view car details")).
				Get("/", h.Get)
			r.With(middleware.RequireAdmin("Only admins can update car details")).
				Patch("/", h.Update)
			r.With(middleware.RequireAdmin("Only admins can delete cars")).
				Delete("/", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCarRequest
	if !core.Bind(w, r, h.validator, &req) {
		return
	}

	car, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			core.BadRequest(w, "Invalid status value")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, CarResponse{Message: "Car added successfully", Car: car})
}

// List returns every listing, or one dashboard page when any of search,
// status or page is given.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("search") && !q.Has("status") && !q.Has("page") {
		cars, err := h.service.List(r.Context())
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		core.OK(w, CarListResponse{Cars: cars})
		return
	}

	params := ListCarsParams{
		Page:     parsePage(q.Get("page")),
		PageSize: core.DashboardPageSize,
		Search:   strings.TrimSpace(q.Get("search")),
		Status:   q.Get("status"),
	}

	cars, total, err := h.service.ListPage(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			core.BadRequest(w, "Invalid status value")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	params.Normalize()
	core.OK(w, CarPageResponse{
		Cars:       cars,
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: core.TotalPages(total, params.PageSize),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	car, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Car")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, CarResponse{Car: car})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCarRequest
	dec := core.JSONDecoder(w, r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if field, ok := unknownField(err); ok {
			core.BadRequest(w, "Unknown field: "+field)
			return
		}
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	car, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			core.BadRequest(w, "Invalid status value")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Car")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, CarResponse{Message: "Car updated successfully", Car: car})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Car")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, "Car deleted successfully")
}

// unknownField extracts the field name from encoding/json's
// DisallowUnknownFields error.
func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
