// AngelaMos | 2026
// filter_test.go

package inquiry

import (
	"net/url"
	"testing"
	"time"

	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	t.Run("no params is an unpaginated list", func(t *testing.T) {
		f, err := ParseFilter(url.Values{})
		require.NoError(t, err)
		assert.False(t, f.Paginated())
		assert.Empty(t, f.Status)
	})

	t.Run("status all is inactive", func(t *testing.T) {
		f, err := ParseFilter(url.Values{"status": {"all"}})
		require.NoError(t, err)
		assert.Empty(t, f.Status)
		assert.False(t, f.Paginated())
	})

	t.Run("any filter turns on pagination", func(t *testing.T) {
		f, err := ParseFilter(url.Values{"search": {"jo"}})
		require.NoError(t, err)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 10, f.PageSize)
	})

	t.Run("explicit page", func(t *testing.T) {
		f, err := ParseFilter(url.Values{"page": {"3"}})
		require.NoError(t, err)
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 20, f.Offset())
	})

	t.Run("huge page keeps a positive offset", func(t *testing.T) {
		f, err := ParseFilter(url.Values{"page": {"2305843009213693953"}})
		require.NoError(t, err)
		assert.Positive(t, f.Offset())
		assert.Equal(t, (core.MaxPage-1)*core.DashboardPageSize, f.Offset())
	})

	t.Run("bad page clamps to first", func(t *testing.T) {
		f, err := ParseFilter(url.Values{"page": {"-2"}})
		require.NoError(t, err)
		assert.Equal(t, 1, f.Page)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := ParseFilter(url.Values{"status": {"lost"}})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("invalid dates", func(t *testing.T) {
		_, err := ParseFilter(url.Values{"date_from": {"03/04/2026"}})
		assert.ErrorIs(t, err, ErrInvalidDate)

		_, err = ParseFilter(url.Values{"date_to": {"2026-13-01"}})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date_to covers the whole day", func(t *testing.T) {
		f, err := ParseFilter(url.Values{
			"date_from": {"2026-03-01"},
			"date_to":   {"2026-03-31"},
		})
		require.NoError(t, err)

		require.NotNil(t, f.DateFrom)
		require.NotNil(t, f.DateTo)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *f.DateTo)
		assert.True(t, f.Paginated())
	})
}

func TestWhere(t *testing.T) {
	t.Run("empty filter", func(t *testing.T) {
		where, args := Filter{}.Where()
		assert.Equal(t, "TRUE", where)
		assert.Empty(t, args)
	})

	t.Run("all predicates numbered in order", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1)

		where, args := Filter{
			OwnerID:  "u-1",
			Search:   "50%_off",
			Status:   StatusPending,
			DateFrom: &from,
			DateTo:   &to,
		}.Where()

		assert.Equal(t,
			"TRUE AND i.user_id = $1"+
				" AND (i.name ILIKE $2 OR i.email ILIKE $2 OR i.city ILIKE $2"+
				" OR c.brand ILIKE $2 OR c.model ILIKE $2)"+
				" AND i.status = $3 AND i.created_at >= $4 AND i.created_at < $5",
			where)
		assert.Equal(t, []any{"u-1", `%50\%\_off%`, StatusPending, from, to}, args)
	})
}
