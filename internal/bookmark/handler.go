// AngelaMos | 2026
// handler.go

package bookmark

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/middleware"
	"github.com/carterperez-dev/dealership/internal/vehicle"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Put("/{carID}", h.Add)
		r.Delete("/{carID}", h.Remove)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, vehicle.CarListResponse{Cars: cars})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	err := h.service.Add(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "carID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Car")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	err := h.service.Remove(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "carID"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
