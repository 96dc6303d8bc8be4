// AngelaMos | 2026
// guard.go

package guard

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/carterperez-dev/dealership/internal/metrics"
	"github.com/carterperez-dev/dealership/internal/middleware"
)

// Class is how the guard treats a page path.
type Class int

const (
	ClassExcluded Class = iota
	ClassPublic
	ClassAuthPage
	ClassPrincipalRequired
	ClassAdminRequired
)

func (c Class) String() string {
	switch c {
	case ClassExcluded:
		return "excluded"
	case ClassAuthPage:
		return "auth_page"
	case ClassPrincipalRequired:
		return "principal_required"
	case ClassAdminRequired:
		return "admin_required"
	default:
		return "public"
	}
}

const (
	LoginPath     = "/login"
	SignupPath    = "/signup"
	HomePath      = "/home"
	DashboardPath = "/dashboard"
)

var (
	excludedPrefixes = []string{
		"/api",
		"/_next/static",
		"/_next/image",
		"/favicon.ico",
		"/healthz",
		"/livez",
		"/readyz",
		"/metrics",
		"/.well-known/",
	}

	excludedSuffixes = []string{".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp"}

	principalPrefixes = []string{"/home", "/car"}
	adminPrefixes     = []string{"/dashboard"}
)

// Excluded reports whether the guard never looks at path: API routes,
// build assets and images.
func Excluded(path string) bool {
	for _, p := range excludedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, s := range excludedSuffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

// Classify maps a request path to its guard class. Prefix matches are
// plain string prefixes, so "/cars" falls under "/car".
func Classify(path string) Class {
	switch {
	case Excluded(path):
		return ClassExcluded
	case path == LoginPath || path == SignupPath:
		return ClassAuthPage
	case hasAnyPrefix(path, adminPrefixes):
		return ClassAdminRequired
	case hasAnyPrefix(path, principalPrefixes):
		return ClassPrincipalRequired
	default:
		return ClassPublic
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Decide returns the redirect target for a navigation, or "" to let it
// through. A nil principal is an anonymous visitor.
func Decide(class Class, principal *middleware.Principal) string {
	if principal == nil {
		if class == ClassPrincipalRequired || class == ClassAdminRequired {
			return LoginPath
		}
		return ""
	}

	switch class {
	case ClassAuthPage:
		if principal.IsAdmin {
			return DashboardPath
		}
		return HomePath
	case ClassAdminRequired:
		if !principal.IsAdmin {
			return HomePath
		}
	}

	return ""
}

// Middleware guards page navigations using the session cookie. A missing
// or unusable session is treated as anonymous.
func Middleware(
	resolver middleware.PrincipalResolver,
	cookieName string,
	logger *slog.Logger,
) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			class := Classify(path)
			if class == ClassExcluded {
				next.ServeHTTP(w, r)
				return
			}

			var principal *middleware.Principal
			token := middleware.SessionToken(r, cookieName)
			if token != "" {
				p, err := resolver.Resolve(r.Context(), token)
				if err != nil {
					logger.DebugContext(r.Context(), "guard session rejected",
						"path", path,
						"error", err,
					)
				} else {
					principal = p
				}
			}

			target := Decide(class, principal)

			logger.DebugContext(r.Context(), "guard decision",
				"path", path,
				"class", class.String(),
				"authenticated", principal != nil,
				"redirect", target,
			)

			if target == "" {
				if principal != nil {
					r = r.WithContext(middleware.WithPrincipal(r.Context(), principal))
				}
				next.ServeHTTP(w, r)
				return
			}

			metrics.GuardRedirects.WithLabelValues(target).Inc()
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
}
