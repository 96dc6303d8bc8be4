// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/carterperez-dev/dealership/internal/core"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// Principal is the authenticated caller. IsAdmin is looked up from the
// profile store on every resolution.
type Principal struct {
	UserID  string
	Email   string
	IsAdmin bool
	TokenID string
}

type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (*Principal, error)
}

// TokenSource pulls a raw credential out of a request.
type TokenSource func(r *http.Request) string

// Authenticator requires a bearer token on every request.
func Authenticator(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return authenticate(resolver, ExtractToken)
}

// SessionAuthenticator accepts a bearer token or, failing that, the session
// cookie. Used by endpoints the browser posts to directly.
func SessionAuthenticator(
	resolver PrincipalResolver,
	cookieName string,
) func(http.Handler) http.Handler {
	return authenticate(resolver, func(r *http.Request) string {
		if token := ExtractToken(r); token != "" {
			return token
		}
		return SessionToken(r, cookieName)
	})
}

func authenticate(
	resolver PrincipalResolver,
	source TokenSource,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := source(r)
			if token == "" {
				core.JSONError(w, core.UnauthorizedError(""))
				return
			}

			principal, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// OptionalAuth attaches a principal when a valid bearer token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				principal, err := resolver.Resolve(r.Context(), token)
				if err == nil {
					r = r.WithContext(WithPrincipal(r.Context(), principal))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects non-admin principals with 403. message is the body
// returned to the caller.
func RequireAdmin(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil {
				core.JSONError(w, core.UnauthorizedError(""))
				return
			}

			if !principal.IsAdmin {
				core.JSONError(w, core.ForbiddenError(message))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken returns the bearer token, or "" when the Authorization header
// is absent or not a bearer credential.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func SessionToken(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		core.JSONError(w, core.TokenRevokedError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(PrincipalKey).(*Principal); ok {
		return p
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if p := GetPrincipal(ctx); p != nil {
		return p.UserID
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}
