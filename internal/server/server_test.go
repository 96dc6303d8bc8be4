// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dealership/internal/config"
	"github.com/carterperez-dev/dealership/internal/health"
)

func webRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<div id=app></div>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o600))
	return dir
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStaticHandler(t *testing.T) {
	h := StaticHandler(webRoot(t))

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{"asset", "/assets/app.js", "console.log(1)"},
		{"root", "/", "<div id=app></div>"},
		{"client route", "/cars/42", "<div id=app></div>"},
		{"directory", "/assets/", "<div id=app></div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestStaticHandlerDisabled(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(StaticHandler(""), "/").Code)
}

func TestShutdownMarksHealthDown(t *testing.T) {
	hh := health.NewHandler()
	srv := New(Config{
		ServerConfig: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		HealthHandler: hh,
	})
	hh.RegisterRoutes(srv.Router())

	require.NoError(t, srv.Shutdown(context.Background(), 0))
	assert.Equal(t, http.StatusServiceUnavailable, serve(srv.Router(), "/healthz").Code)
}

func TestShutdownHonoursContext(t *testing.T) {
	srv := New(Config{ServerConfig: config.ServerConfig{ShutdownTimeout: time.Second}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, srv.Shutdown(ctx, time.Minute), context.Canceled)
}
