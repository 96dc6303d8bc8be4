// AngelaMos | 2026
// clientip.go

package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the caller address. With X-Forwarded-For the last hop is
// used since it is the one appended by our own proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(xff[strings.LastIndexByte(xff, ',')+1:])
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
