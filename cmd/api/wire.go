// AngelaMos | 2026
// wire.go

package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/dealership/internal/admin"
	"github.com/carterperez-dev/dealership/internal/auth"
	"github.com/carterperez-dev/dealership/internal/bookmark"
	"github.com/carterperez-dev/dealership/internal/browse"
	"github.com/carterperez-dev/dealership/internal/config"
	"github.com/carterperez-dev/dealership/internal/guard"
	"github.com/carterperez-dev/dealership/internal/health"
	"github.com/carterperez-dev/dealership/internal/inquiry"
	"github.com/carterperez-dev/dealership/internal/metrics"
	"github.com/carterperez-dev/dealership/internal/middleware"
	"github.com/carterperez-dev/dealership/internal/server"
	"github.com/carterperez-dev/dealership/internal/storage"
	"github.com/carterperez-dev/dealership/internal/upload"
	"github.com/carterperez-dev/dealership/internal/user"
	"github.com/carterperez-dev/dealership/internal/vehicle"
)

// app is every handler plus the shared pieces routes are mounted with.
type app struct {
	logger   *slog.Logger
	infra    *infra
	jwt      *auth.JWTManager
	resolver *auth.Resolver
	janitor  *auth.Janitor
	health   *health.Handler

	auth     *auth.Handler
	users    *user.Handler
	admin    *admin.Handler
	cars     *vehicle.Handler
	browse   *browse.Handler
	inquiry  *inquiry.Handler
	bookmark *bookmark.Handler
	upload   *upload.Handler
}

func wire(cfg *config.Config, in *infra, logger *slog.Logger) (*app, error) {
	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return nil, err
	}
	logger.Info("signing key loaded", "algorithm", "ES256", "key_id", jwtManager.GetKeyID())

	users := user.NewService(user.NewRepository(in.db.DB))
	cars := vehicle.NewService(vehicle.NewRepository(in.db.DB))
	inquiries := inquiry.NewService(inquiry.NewRepository(in.db.DB))
	bookmarks := bookmark.NewService(bookmark.NewRepository(in.db.DB))
	store := storage.NewS3Store(cfg.Storage)

	blacklist := auth.NewTokenBlacklist(in.redis.Client)
	authRepo := auth.NewRepository(in.db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, users, blacklist, cfg.Auth.MinPasswordLength, logger)

	janitor, err := auth.NewJanitor(authRepo, cfg.Auth.TokenCleanupSchedule, logger)
	if err != nil {
		return nil, err
	}

	return &app{
		logger:   logger,
		infra:    in,
		jwt:      jwtManager,
		resolver: auth.NewResolver(jwtManager, blacklist, users, logger),
		janitor:  janitor,
		health: health.NewHandler(
			health.Dependency{Name: "database", Checker: in.db},
			health.Dependency{Name: "redis", Checker: in.redis},
			health.Dependency{Name: "storage", Checker: store, Optional: true},
		),

		auth:  auth.NewHandler(authSvc, cfg.Session),
		users: user.NewHandler(users),
		admin: admin.NewHandler(admin.HandlerConfig{
			Cars:      cars,
			Inquiries: inquiries,
			Customers: users,
			Database:  in.db,
			Redis:     in.redis,
		}),
		cars:     vehicle.NewHandler(cars),
		browse:   browse.NewHandler(cars, bookmarks),
		inquiry:  inquiry.NewHandler(inquiries),
		bookmark: bookmark.NewHandler(bookmarks),
		upload:   upload.NewHandler(store, cfg.Storage.MaxUploadSize, logger),
	}, nil
}

// mount installs global middleware, the API under /api and the guarded
// page bundle everywhere else.
func (a *app) mount(router chi.Router, cfg *config.Config) {
	rdb := a.infra.redis.Client

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recoverer)
	if cfg.Metrics.Enabled {
		metrics.Register()
		router.Use(middleware.Metrics)
	}
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit:    middleware.Per(cfg.RateLimit.Requests, cfg.RateLimit.Burst, cfg.RateLimit.Window),
		FailOpen: cfg.RateLimit.FailOpen,
	}).Handler)

	a.health.RegisterRoutes(router)
	router.Get("/.well-known/jwks.json", a.jwt.GetJWKSHandler())
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	authLimit := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthBurst),
		Scope:    "auth",
		FailOpen: cfg.RateLimit.FailOpen,
	})
	userLimit := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(cfg.RateLimit.UserRequests, cfg.RateLimit.UserBurst),
		KeyFunc:  middleware.KeyByPrincipalAndEndpoint,
		Scope:    "user",
		FailOpen: cfg.RateLimit.FailOpen,
	})
	bearer := userLimit.After(middleware.Authenticator(a.resolver))
	bearerOrCookie := userLimit.After(
		middleware.SessionAuthenticator(a.resolver, cfg.Session.CookieName),
	)

	router.Route("/api", func(r chi.Router) {
		r.With(authLimit.Handler).Group(func(r chi.Router) {
			a.auth.RegisterRoutes(r, bearer)
		})

		a.users.RegisterRoutes(r, bearer)
		a.users.RegisterAdminRoutes(r, bearer)
		a.admin.RegisterRoutes(r, bearer)
		a.cars.RegisterRoutes(r, bearer)
		a.browse.RegisterRoutes(r, bearer, middleware.OptionalAuth(a.resolver))
		a.inquiry.RegisterRoutes(r, bearer)
		a.bookmark.RegisterRoutes(r, bearer)
		a.upload.RegisterRoutes(r, bearerOrCookie)
	})

	router.With(guard.Middleware(a.resolver, cfg.Session.CookieName, a.logger)).
		Handle("/*", server.StaticHandler(cfg.Web.Dir))
}
