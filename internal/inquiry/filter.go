// AngelaMos | 2026
// filter.go

package inquiry

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/carterperez-dev/dealership/internal/core"
)

const dateLayout = "2006-01-02"

// Filter narrows an inquiry listing. OwnerID, when set, restricts rows to
// one principal and is never taken from the query string.
type Filter struct {
	OwnerID  string
	Search   string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// Paginated reports whether the caller asked for a dashboard page rather
// than the full list.
func (f Filter) Paginated() bool {
	return f.Page > 0
}

func (f Filter) Offset() int {
	return core.Offset(f.Page, f.PageSize)
}

// ParseFilter reads search, status, date_from, date_to and page. Dates are
// calendar days; date_to includes the whole day.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		Search:   strings.TrimSpace(q.Get("search")),
		Status:   q.Get("status"),
		PageSize: core.DashboardPageSize,
	}

	if f.Status == "all" {
		f.Status = ""
	}
	if f.Status != "" && !IsValidStatus(f.Status) {
		return Filter{}, fmt.Errorf("status: %w", ErrInvalidStatus)
	}

	if raw := q.Get("date_from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Filter{}, fmt.Errorf("date_from: %w", ErrInvalidDate)
		}
		f.DateFrom = &t
	}

	if raw := q.Get("date_to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Filter{}, fmt.Errorf("date_to: %w", ErrInvalidDate)
		}
		end := t.AddDate(0, 0, 1)
		f.DateTo = &end
	}

	if q.Has("page") {
		page, err := strconv.Atoi(q.Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		f.Page = page
	} else if f.Search != "" || f.Status != "" || f.DateFrom != nil || f.DateTo != nil {
		f.Page = 1
	}

	return f, nil
}

// Where renders the filter as a SQL predicate over inquiries i joined with
// cars c. Placeholders start at $1.
func (f Filter) Where() (string, []any) {
	conditions := []string{"TRUE"}
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.OwnerID != "" {
		conditions = append(conditions, "i.user_id = "+next(f.OwnerID))
	}

	if f.Search != "" {
		p := next("%" + core.EscapeLike(f.Search) + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(i.name ILIKE %[1]s OR i.email ILIKE %[1]s OR i.city ILIKE %[1]s"+
				" OR c.brand ILIKE %[1]s OR c.model ILIKE %[1]s)", p))
	}

	if f.Status != "" {
		conditions = append(conditions, "i.status = "+next(f.Status))
	}

	if f.DateFrom != nil {
		conditions = append(conditions, "i.created_at >= "+next(*f.DateFrom))
	}

	if f.DateTo != nil {
		conditions = append(conditions, "i.created_at < "+next(*f.DateTo))
	}

	return strings.Join(conditions, " AND "), args
}
