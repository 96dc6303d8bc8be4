// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/dealership/internal/middleware"
)

// StatusCounter counts rows per lifecycle status.
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type CustomerCounter interface {
	CountCustomers(ctx context.Context) (int, error)
}

type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Stats() sql.DBStats
}

type RedisProbe interface {
	Ping(ctx context.Context) error
	PoolStats() *redis.PoolStats
}

type HandlerConfig struct {
	Cars      StatusCounter
	Inquiries StatusCounter
	Customers CustomerCounter
	Database  DatabaseProbe
	Redis     RedisProbe
}

type Handler struct {
	cars      StatusCounter
	inquiries StatusCounter
	customers CustomerCounter
	database  DatabaseProbe
	redis     RedisProbe
	started   time.Time
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		cars:      cfg.Cars,
		inquiries: cfg.Inquiries,
		customers: cfg.Customers,
		database:  cfg.Database,
		redis:     cfg.Redis,
		started:   time.Now(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAdmin("Only admins can view dashboard stats"))

		r.Get("/stats", h.GetDashboardStats)
		r.Get("/stats/system", h.GetSystemStats)
	})
}
