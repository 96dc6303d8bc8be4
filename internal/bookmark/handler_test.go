// AngelaMos | 2026
// handler_test.go

package bookmark

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

	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/middleware"
	"github.com/carterperez-dev/dealership/internal/vehicle"
)

type fakeRepo struct {
	mu    sync.Mutex
	cars  map[string]vehicle.Car
	marks map[string][]string
}

func newFakeRepo(cars ...vehicle.Car) *fakeRepo {
	r := &fakeRepo{cars: map[string]vehicle.Car{}, marks: map[string][]string{}}
	for _, c := range cars {
		r.cars[c.ID] = c
	}
	return r
}

func (r *fakeRepo) Add(_ context.Context, userID, carID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[carID]; !ok {
		return fmt.Errorf("add bookmark: %w", core.ErrNotFound)
	}
	for _, id := range r.marks[userID] {
		if id == carID {
			return nil
		}
	}
	r.marks[userID] = append(r.marks[userID], carID)
	return nil
}

func (r *fakeRepo) Remove(_ context.Context, userID, carID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.marks[userID][:0]
	for _, id := range r.marks[userID] {
		if id != carID {
			kept = append(kept, id)
		}
	}
	r.marks[userID] = kept
	return nil
}

func (r *fakeRepo) Exists(_ context.Context, userID, carID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.marks[userID] {
		if id == carID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListCars(_ context.Context, userID string) ([]vehicle.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []vehicle.Car{}
	for i := len(r.marks[userID]) - 1; i >= 0; i-- {
		out = append(out, r.cars[r.marks[userID][i]])
	}
	return out, nil
}

type tokenResolver map[string]*middleware.Principal

func (m tokenResolver) Resolve(_ context.Context, token string) (*middleware.Principal, error) {
	if p, ok := m[token]; ok {
		return p, nil
	}
	return nil, core.ErrTokenInvalid
}

func do(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBookmarks(t *testing.T) {
	repo := newFakeRepo(
		vehicle.Car{ID: "car-1", Brand: "Toyota"},
		vehicle.Car{ID: "car-2", Brand: "Honda"},
	)
	svc := NewService(repo)

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.Authenticator(tokenResolver{
		"ada": {UserID: "u-ada"},
		"bo":  {UserID: "u-bo"},
	}))

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/bookmarks/", "").Code)

	require.Equal(t, http.StatusNoContent, do(r, http.MethodPut, "/bookmarks/car-1", "ada").Code)
	require.Equal(t, http.StatusNoContent, do(r, http.MethodPut, "/bookmarks/car-2", "ada").Code)
	require.Equal(t, http.StatusNoContent, do(r, http.MethodPut, "/bookmarks/car-1", "ada").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/bookmarks/car-9", "ada").Code)

	rec := do(r, http.MethodGet, "/bookmarks/", "ada")
	require.Equal(t, http.StatusOK, rec.Code)
	var list vehicle.CarListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Cars, 2)
	assert.Equal(t, "car-2", list.Cars[0].ID)

	rec = do(r, http.MethodGet, "/bookmarks/", "bo")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Cars)

	require.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/bookmarks/car-2", "ada").Code)
	ok, err := svc.IsBookmarked(context.Background(), "u-ada", "car-2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsBookmarked(context.Background(), "", "car-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
