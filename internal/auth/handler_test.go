// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dealership/internal/config"
	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/middleware"
)

const signupBody = `{"firstName":"Ada","lastName":"Obi","email":"ada@example.com",
	"contactNumber":"0801","password":"hunter22"}`

var testSession = config.SessionConfig{CookieName: "session", SameSite: "lax"}

func newAuthRouter(t *testing.T, svc *Service) http.Handler {
	t.Helper()
	resolver := NewResolver(svc.jwt, nil, svc.profiles, nil)
	r := chi.NewRouter()
	NewHandler(svc, testSession).RegisterRoutes(r, middleware.Authenticator(resolver))
	return r
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) core.ErrorResponse {
	t.Helper()
	var resp core.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSignupHandler(t *testing.T) {
	tests := []struct {
		name        string
		repo        func() *memRepo
		profiles    *fakeProfiles
		body        string
		wantStatus  int
		wantMsg     string
		wantErrCode string
	}{
		{
			name:       "missing fields",
			repo:       newMemRepo,
			profiles:   &fakeProfiles{},
			body:       `{"firstName":"Ada","email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Missing required fields",
		},
		{
			name:       "provider rejection",
			repo:       newMemRepo,
			profiles:   &fakeProfiles{},
			body:       strings.Replace(signupBody, "hunter22", "abc", 1),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Password should be at least 6 characters",
		},
		{
			name:        "profile failure rolled back",
			repo:        newMemRepo,
			profiles:    &fakeProfiles{createErr: errStore},
			body:        signupBody,
			wantStatus:  http.StatusInternalServerError,
			wantMsg:     "Profile setup failed. Please try signing up again.",
			wantErrCode: "PROFILE_SETUP_FAILED",
		},
		{
			name: "profile failure orphaned",
			repo: func() *memRepo {
				r := newMemRepo()
				r.deleteErr = errStore
				return r
			},
			profiles:    &fakeProfiles{createErr: errStore},
			body:        signupBody,
			wantStatus:  http.StatusInternalServerError,
			wantMsg:     "Account created but profile setup failed. Please contact support.",
			wantErrCode: "PROFILE_SETUP_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.repo(), newTestJWT(t), tt.profiles, nil, 6, nil)
			rec := post(newAuthRouter(t, svc), "/auth/signup", tt.body)

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.Equal(t, tt.wantErrCode, resp.Code)
		})
	}
}

func TestSignupHandlerSuccess(t *testing.T) {
	svc := NewService(newMemRepo(), newTestJWT(t), &fakeProfiles{}, nil, 6, nil)

	rec := post(newAuthRouter(t, svc), "/auth/signup", signupBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SignupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Account created successfully", resp.Message)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestLoginSetsSessionCookieAndLogoutClearsIt(t *testing.T) {
	svc := NewService(newMemRepo(), newTestJWT(t), &fakeProfiles{}, nil, 6, nil)
	router := newAuthRouter(t, svc)

	require.Equal(t, http.StatusOK, post(router, "/auth/signup", signupBody).Code)

	bad := post(router, "/auth/login", `{"email":"ada@example.com","password":"nope-nope"}`)
	require.Equal(t, http.StatusUnauthorized, bad.Code)
	assert.Equal(t, "Invalid login credentials", decodeError(t, bad).Error)

	rec := post(router, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var login AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, login.Tokens.AccessToken, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+login.Tokens.AccessToken)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)

	require.Equal(t, http.StatusNoContent, out.Code)
	cleared := out.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestRefreshReuseClearsCookie(t *testing.T) {
	svc := NewService(newMemRepo(), newTestJWT(t), &fakeProfiles{}, nil, 6, nil)
	router := newAuthRouter(t, svc)

	require.Equal(t, http.StatusOK, post(router, "/auth/signup", signupBody).Code)
	rec := post(router, "/auth/login", `{"email":"ada@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var login AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	body := `{"refresh_token":"` + login.Tokens.RefreshToken + `"}`
	require.Equal(t, http.StatusOK, post(router, "/auth/refresh", body).Code)

	reused := post(router, "/auth/refresh", body)
	require.Equal(t, http.StatusUnauthorized, reused.Code)
	assert.Equal(t, "TOKEN_REUSE_DETECTED", decodeError(t, reused).Code)
	require.Len(t, reused.Result().Cookies(), 1)
}
