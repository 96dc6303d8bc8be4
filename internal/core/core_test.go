// AngelaMos | 2026
// core_test.go

package core

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantFirst int
		wantLen   int
	}{
		{"first page", 1, 12, 0, 12},
		{"last partial page", 3, 12, 24, 1},
		{"below one clamps", 0, 12, 0, 12},
		{"past the end", 4, 12, -1, 0},
		{"zero page size", 1, 0, -1, 0},
		{"huge page", 2305843009213693953, 12, -1, 0},
		{"max int page", math.MaxInt, 1, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, tt.pageSize)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, got[0])
			}
		})
	}

	page := Paginate(items, 1, 12)
	page[0] = 99
	assert.Equal(t, 0, items[0])
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(5, 0))
	assert.Equal(t, (MaxPage-1)*10, Offset(2305843009213693953, 10))
	assert.Equal(t, (MaxPage-1)*MaxPageSize, Offset(math.MaxInt, math.MaxInt))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 12))
	assert.Equal(t, 2, TotalPages(24, 12))
	assert.Equal(t, 0, TotalPages(0, 12))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestPaginatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"a"}, 2, DashboardPageSize, 11)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"items":["a"],"page":2,"page_size":10,"total":11,"total_pages":2}`,
		rec.Body.String(),
	)
}

func TestJSONErrorMasksUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, errors.New("db exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "exploded")

	rec = httptest.NewRecorder()
	JSONError(rec, fmt.Errorf("wrapped: %w", NotFoundError("car")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type sample struct {
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"omitempty,contact_email"`
	Status string `json:"status" validate:"omitempty,oneof=available sold"`
	Note   string `json:"note"   validate:"max=5"`
	Year   int    `json:"year"   validate:"omitempty,gte=1900"`
}

func TestFormatValidationError(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		in      sample
		want    string
		missing bool
	}{
		{"required", sample{}, "Missing required field: name", true},
		{"email", sample{Name: "a", Email: "no-at-sign"}, "Invalid email format", false},
		{"oneof", sample{Name: "a", Status: "gone"}, "Invalid status value", false},
		{"max string", sample{Name: "a", Note: "toolong"}, "note must be at most 5 characters", false},
		{"range", sample{Name: "a", Year: 1800}, "year is out of range", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, FormatValidationError(err))
			assert.Equal(t, tt.missing, IsMissingField(err))
		})
	}

	assert.Equal(t, "invalid request body", FormatValidationError(errors.New("x")))
}

func TestFormatValidationErrorPrefersMissingField(t *testing.T) {
	type listing struct {
		StockNumber string `json:"stock_number" validate:"max=3"`
		Brand       string `json:"brand"        validate:"required"`
	}

	err := NewValidator().Struct(listing{StockNumber: "STK-0001"})
	require.Error(t, err)
	assert.Equal(t, "Missing required field: brand", FormatValidationError(err))
	assert.True(t, IsMissingField(err))

	err = NewValidator().Struct(listing{StockNumber: "STK-0001", Brand: "Kia"})
	require.Error(t, err)
	assert.Equal(t, "stock_number must be at most 3 characters", FormatValidationError(err))
	assert.False(t, IsMissingField(err))
}

func TestIsContactEmail(t *testing.T) {
	assert.True(t, IsContactEmail("buyer@example.com"))
	assert.False(t, IsContactEmail("buyer@example"))
	assert.False(t, IsContactEmail("buyer example@x.com"))
	assert.False(t, IsContactEmail(""))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, upgraded, err := VerifyPasswordTimingSafe("hunter22", &hash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, upgraded)

	ok, _, err = VerifyPasswordTimingSafe("hunter23", &hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _, err = VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	malformed := "$bcrypt$whatever"
	_, _, err = VerifyPasswordTimingSafe("hunter22", &malformed)
	assert.ErrorIs(t, err, ErrMalformedHash)
}

func TestVerifyPasswordTimingSafeUpgradesWeakHashes(t *testing.T) {
	weak := DefaultPasswordParams
	weak.Memory = 8 * 1024
	old, err := hashPasswordWith("hunter22", weak)
	require.NoError(t, err)
	assert.Contains(t, old, "m=8192,")

	ok, upgraded, err := VerifyPasswordTimingSafe("hunter22", &old)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotEmpty(t, upgraded)
	assert.Contains(t, upgraded, "m=65536,")

	ok, again, err := VerifyPasswordTimingSafe("hunter22", &upgraded)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, again)

	ok, again, err = VerifyPasswordTimingSafe("wrong", &old)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, again)
}

func TestTokensAndKeys(t *testing.T) {
	a, err := GenerateRefreshToken()
	require.NoError(t, err)
	b, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, HashToken(a), 64)
	assert.Equal(t, HashToken(a), HashToken(a))

	suffix, err := RandomKeySuffix(8)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{8}$`), suffix)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, EscapeLike(`50%_off\`))
	assert.Equal(t, "civic", EscapeLike("civic"))
}

func TestPostgresErrorClassification(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, IsDuplicateKeyError(dup))
	assert.False(t, IsDuplicateKeyError(fk))
	assert.True(t, IsForeignKeyError(fk))
	assert.False(t, IsForeignKeyError(errors.New("plain")))
	assert.True(t, IsCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, IsCheckViolation(nil))
}

func TestJitteredDuration(t *testing.T) {
	base := time.Hour
	for range 20 {
		d := jitteredDuration(base)
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+base/7)
	}
}
