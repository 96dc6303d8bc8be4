// AngelaMos | 2026
// ratelimit_keys.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

func KeyByIP(r *http.Request) string {
	return "ratelimit:ip:" + ClientIP(r)
}

// KeyByPrincipal keys authenticated callers by user id. It only sees a
// principal when mounted after an authenticator.
func KeyByPrincipal(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != "" {
		return "ratelimit:user:" + userID
	}
	return KeyByIP(r)
}

// KeyByPrincipalAndEndpoint gives every route its own budget. Path segments
// that look like ids collapse to {id} so /cars/1 and /cars/2 share one.
func KeyByPrincipalAndEndpoint(r *http.Request) string {
	return KeyByPrincipal(r) + ":endpoint:" + routeShape(r.URL.Path)
}

func routeShape(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if looksLikeID(seg) {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func looksLikeID(seg string) bool {
	if seg == "" {
		return false
	}
	if uuid.Validate(seg) == nil && len(seg) == 36 {
		return true
	}
	return strings.Trim(seg, "0123456789") == ""
}
