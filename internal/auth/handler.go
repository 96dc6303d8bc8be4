// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/dealership/internal/config"
	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/metrics"
	"github.com/carterperez-dev/dealership/internal/middleware"
)

type Handler struct {
	service   *Service
	session   config.SessionConfig
	validator *validator.Validate
}

func NewHandler(service *Service, session config.SessionConfig) *Handler {
	return &Handler{
		service:   service,
		session:   session,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
			r.Post("/logout", h.Logout)
		})
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Struct(req); err != nil {
		metrics.Signups.WithLabelValues("rejected").Inc()
		if core.IsMissingField(err) {
			core.BadRequest(w, "Missing required fields")
			return
		}
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Signup(r.Context(), req)
	if err != nil {
		outcome, appErr := signupFailure(err)
		metrics.Signups.WithLabelValues(outcome).Inc()
		core.JSONError(w, appErr)
		return
	}

	metrics.Signups.WithLabelValues("created").Inc()
	core.OK(w, resp)
}

// signupFailure maps a Signup error to its metric outcome and response.
func signupFailure(err error) (string, error) {
	var providerErr *ProviderError
	switch {
	case errors.As(err, &providerErr):
		return "rejected", core.BadRequestError(providerErr.Message)
	case errors.Is(err, ErrOrphanedIdentity):
		return "orphaned", core.NewAppError(err,
			"Account created but profile setup failed. Please contact support.",
			http.StatusInternalServerError, "PROFILE_SETUP_FAILED")
	case errors.Is(err, ErrProfileSetupFailed):
		return "rolled_back", core.NewAppError(err,
			"Profile setup failed. Please try signing up again.",
			http.StatusInternalServerError, "PROFILE_SETUP_FAILED")
	default:
		return "error", err
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !core.Bind(w, r, h.validator, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req, r.UserAgent(), middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(w, core.UnauthorizedError("Invalid login credentials"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(resp.Tokens.AccessToken, resp.Tokens.ExpiresAt))
	core.OK(w, resp)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !core.Bind(w, r, h.validator, &req) {
		return
	}

	resp, err := h.service.Refresh(
		r.Context(),
		req.RefreshToken,
		r.UserAgent(),
		middleware.ClientIP(r),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenReuse):
			http.SetCookie(w, h.expiredSessionCookie())
			core.JSONError(w, core.NewAppError(
				core.ErrTokenRevoked,
				"security alert: token reuse detected, all sessions revoked",
				http.StatusUnauthorized,
				"TOKEN_REUSE_DETECTED",
			))
		case errors.Is(err, core.ErrTokenExpired):
			core.JSONError(w, core.TokenExpiredError())
		case errors.Is(err, core.ErrTokenRevoked):
			core.JSONError(w, core.TokenRevokedError())
		case errors.Is(err, core.ErrTokenInvalid):
			core.JSONError(w, core.TokenInvalidError())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(resp.Tokens.AccessToken, resp.Tokens.ExpiresAt))
	core.OK(w, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	var req LogoutRequest
	if r.ContentLength != 0 {
		if !core.DecodeJSON(w, r, &req) {
			return
		}
	}

	err := h.service.Logout(
		r.Context(),
		req.RefreshToken,
		principal.UserID,
		principal.TokenID,
	)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cannot revoke another user's token")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	http.SetCookie(w, h.expiredSessionCookie())
	core.NoContent(w)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	user, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, user)
}
