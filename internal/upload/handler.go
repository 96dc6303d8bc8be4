// AngelaMos | 2026
// handler.go

package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/metrics"
	"github.com/carterperez-dev/dealership/internal/middleware"
	"github.com/carterperez-dev/dealership/internal/storage"
)

const (
	formField  = "files"
	sniffBytes = 512
	suffixLen  = 6
)

type ObjectStore interface {
	Put(ctx context.Context, obj storage.Object) (string, error)
}

type Handler struct {
	store         ObjectStore
	maxUploadSize int64
	logger        *slog.Logger
	now           func() time.Time
}

func NewHandler(store ObjectStore, maxUploadSize int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:         store,
		maxUploadSize: maxUploadSize,
		logger:        logger,
		now:           time.Now,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Post("/upload", h.Upload)
}

type Response struct {
	Message string   `json:"message"`
	URLs    []string `json:"urls"`
	Errors  []string `json:"errors,omitempty"`
}

// Upload stores every file in the "files" field one after another. A batch
// succeeds when at least one file lands.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			core.BadRequest(w, "Upload too large")
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			core.BadRequest(w, "invalid multipart body")
			return
		}
	}
	if r.MultipartForm != nil {
		defer func() {
			//nolint:errcheck // temp file cleanup is best effort
			_ = r.MultipartForm.RemoveAll()
		}()
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File[formField]
	}
	if len(files) == 0 {
		core.BadRequest(w, "No files provided")
		return
	}

	urls := make([]string, 0, len(files))
	var failures []string

	for _, fh := range files {
		url, err := h.storeFile(r.Context(), userID, fh)
		if err != nil {
			metrics.UploadedFiles.WithLabelValues("failed").Inc()
			h.logger.WarnContext(r.Context(), "file upload failed",
				"file", fh.Filename,
				"user_id", userID,
				"error", err,
			)
			failures = append(failures, fmt.Sprintf("Failed to upload %s: %s", fh.Filename, err))
			continue
		}
		metrics.UploadedFiles.WithLabelValues("stored").Inc()
		urls = append(urls, url)
	}

	if len(urls) == 0 {
		core.JSONError(w, core.NewAppError(
			core.ErrInvalidInput,
			"All uploads failed",
			http.StatusInternalServerError,
			"UPLOAD_FAILED",
		).WithDetails(failures...))
		return
	}

	core.OK(w, Response{
		Message: "Upload successful",
		URLs:    urls,
		Errors:  failures,
	})
}

func (h *Handler) storeFile(
	ctx context.Context,
	userID string,
	fh *multipart.FileHeader,
) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer func() {
		//nolint:errcheck // read-only multipart part
		_ = f.Close()
	}()

	contentType, body, err := detectContentType(fh.Header.Get("Content-Type"), f)
	if err != nil {
		return "", err
	}

	key, err := h.objectKey(userID, fh.Filename)
	if err != nil {
		return "", err
	}

	return h.store.Put(ctx, storage.Object{
		Key:         key,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        body,
	})
}

// objectKey builds <userID>/<unix millis>-<random>.<ext>.
func (h *Handler) objectKey(userID, filename string) (string, error) {
	suffix, err := core.RandomKeySuffix(suffixLen)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d-%s.%s", userID, h.now().UnixMilli(), suffix, extension(filename)), nil
}

func extension(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return "bin"
	}
	return ext
}

// detectContentType trusts a declared, specific part type and otherwise
// sniffs the first bytes. The returned reader still yields the whole file.
func detectContentType(declared string, f multipart.File) (string, io.Reader, error) {
	if declared != "" && declared != "application/octet-stream" {
		return declared, f, nil
	}

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read: %w", err)
	}
	head = head[:n]

	return http.DetectContentType(head), io.MultiReader(bytes.NewReader(head), f), nil
}
