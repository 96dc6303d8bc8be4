// AngelaMos | 2026
// user_test.go

package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dealership/internal/auth"
	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/middleware"
)

type fakeRepo struct {
	mu       sync.Mutex
	profiles map[string]*Profile
	listed   []ListProfilesParams
}

func newFakeRepo(profiles ...Profile) *fakeRepo {
	r := &fakeRepo{profiles: map[string]*Profile{}}
	for i := range profiles {
		p := profiles[i]
		r.profiles[p.UserID] = &p
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.UserID]; ok {
		return fmt.Errorf("create profile: %w", core.ErrDuplicateKey)
	}
	cp := *p
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *fakeRepo) GetByUserID(_ context.Context, userID string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetAccessLevel(ctx context.Context, userID string) (int, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return p.AccessLevel, nil
}

func (r *fakeRepo) SetAccessLevelByEmail(_ context.Context, email string, level int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			p.AccessLevel = level
			return nil
		}
	}
	return fmt.Errorf("set access level: %w", core.ErrNotFound)
}

func (r *fakeRepo) CountByAccessLevel(_ context.Context, level int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.profiles {
		if p.AccessLevel == level {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) List(_ context.Context, params ListProfilesParams) ([]Profile, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listed = append(r.listed, params)
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func TestCreateProfileIsAlwaysRegular(t *testing.T) {
	svc := NewService(newFakeRepo())

	info, err := svc.CreateProfile(context.Background(), auth.NewProfile{
		UserID:    "u-1",
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "Ada@Example.com",
	})
	require.NoError(t, err)
	assert.False(t, info.IsAdmin)
	assert.Equal(t, "ada@example.com", info.Email)

	isAdmin, err := svc.IsAdmin(context.Background(), "u-1")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestIsAdminMissingProfile(t *testing.T) {
	isAdmin, err := NewService(newFakeRepo()).IsAdmin(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.False(t, isAdmin)
}

func TestSetRole(t *testing.T) {
	repo := newFakeRepo(Profile{UserID: "u-1", Email: "ada@example.com", AccessLevel: AccessLevelRegular})
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SetRole(ctx, "  ADA@example.com ", RoleAdmin))
	isAdmin, err := svc.IsAdmin(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	require.NoError(t, svc.SetRole(ctx, "ada@example.com", RoleUser))
	isAdmin, _ = svc.IsAdmin(ctx, "u-1")
	assert.False(t, isAdmin)

	assert.ErrorIs(t, svc.SetRole(ctx, "ada@example.com", "owner"), core.ErrInvalidInput)
	assert.ErrorIs(t, svc.SetRole(ctx, "nobody@example.com", RoleAdmin), core.ErrNotFound)
}

func TestCountCustomers(t *testing.T) {
	svc := NewService(newFakeRepo(
		Profile{UserID: "a", AccessLevel: AccessLevelAdmin},
		Profile{UserID: "b", AccessLevel: AccessLevelRegular},
		Profile{UserID: "c", AccessLevel: AccessLevelRegular},
	))

	n, err := svc.CountCustomers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

type tokenResolver map[string]*middleware.Principal

func (m tokenResolver) Resolve(_ context.Context, token string) (*middleware.Principal, error) {
	if p, ok := m[token]; ok {
		return p, nil
	}
	return nil, core.ErrTokenInvalid
}

func newRouter(repo *fakeRepo) http.Handler {
	authn := middleware.Authenticator(tokenResolver{
		"admin":    {UserID: "a", IsAdmin: true},
		"customer": {UserID: "b"},
	})
	h := NewHandler(NewService(repo))
	r := chi.NewRouter()
	h.RegisterRoutes(r, authn)
	h.RegisterAdminRoutes(r, authn)
	return r
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlers(t *testing.T) {
	repo := newFakeRepo(
		Profile{UserID: "a", Email: "admin@example.com", AccessLevel: AccessLevelAdmin},
		Profile{UserID: "b", Email: "buyer@example.com", AccessLevel: AccessLevelRegular},
	)
	router := newRouter(repo)

	t.Run("me", func(t *testing.T) {
		rec := get(router, "/users/me", "customer")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "buyer@example.com", resp.Email)
		assert.Equal(t, RoleUser, resp.Role)
	})

	t.Run("me unauthenticated", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(router, "/users/me", "").Code)
	})

	t.Run("admin list forbidden for customer", func(t *testing.T) {
		rec := get(router, "/admin/users/", "customer")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Only admins can view users")
	})

	t.Run("admin list invalid role", func(t *testing.T) {
		rec := get(router, "/admin/users/?role=owner", "admin")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid role value")
	})

	t.Run("admin list", func(t *testing.T) {
		rec := get(router, "/admin/users/?page=0&page_size=500&role=admin", "admin")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp core.PaginatedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 100, resp.PageSize)
		assert.Equal(t, 2, resp.Total)
		require.NotEmpty(t, repo.listed)
		assert.Equal(t, RoleAdmin, repo.listed[len(repo.listed)-1].Role)
	})

	t.Run("admin get missing", func(t *testing.T) {
		rec := get(router, "/admin/users/ghost", "admin")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "user not found")
	})
}
