// AngelaMos | 2026
// handler.go

package inquiry

import (
	"errors"
	"net/http"

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
	r.Route("/inquiries", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(middleware.RequireAdmin("Only admins can update inquiry status")).
			Patch("/{id}", h.UpdateStatus)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInquiryRequest
	if !core.Bind(w, r, h.validator, &req) {
		return
	}

	inquiry, err := h.service.Create(r.Context(), middleware.GetPrincipal(r.Context()), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Car")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, InquiryResponse{
		Message: "Inquiry submitted successfully",
		Inquiry: inquiry,
	})
}

// List returns {inquiries} or, when any dashboard filter is present, one
// page of them.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			core.BadRequest(w, "Invalid status value")
		default:
			core.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		}
		return
	}

	rows, total, err := h.service.List(r.Context(), middleware.GetPrincipal(r.Context()), filter)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if !filter.Paginated() {
		core.OK(w, InquiryListResponse{Inquiries: rows})
		return
	}

	core.OK(w, InquiryPageResponse{
		Inquiries:  rows,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: core.TotalPages(total, filter.PageSize),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	row, err := h.service.Get(
		r.Context(),
		middleware.GetPrincipal(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Inquiry")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, InquiryResponse{Inquiry: row})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	if !IsValidStatus(req.Status) {
		core.BadRequest(w, "Invalid status value")
		return
	}

	inquiry, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			core.BadRequest(w, "Invalid status value")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Inquiry")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, InquiryResponse{
		Message: "Status updated successfully",
		Inquiry: inquiry,
	})
}
