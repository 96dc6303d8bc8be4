// AngelaMos | 2026
// cookie.go

package auth

import (
	"net/http"
	"time"
)

// sessionCookie carries the access token for page navigations and direct
// browser posts. It lives exactly as long as the token.
func (h *Handler) sessionCookie(accessToken string, expiresAt time.Time) *http.Cookie {
	c := h.baseCookie()
	c.Value = accessToken
	c.Expires = expiresAt
	c.MaxAge = max(int(time.Until(expiresAt)/time.Second), 1)
	return c
}

func (h *Handler) expiredSessionCookie() *http.Cookie {
	c := h.baseCookie()
	c.MaxAge = -1
	return c
}

func (h *Handler) baseCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.session.CookieName,
		Path:     "/",
		Domain:   h.session.Domain,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: h.session.SameSiteMode(),
	}
}
