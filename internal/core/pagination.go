// AngelaMos | 2026
// pagination.go

package core

import "math"

const (
	BrowsePageSize    = 12
	DashboardPageSize = 10
	MaxPageSize       = 100

	// MaxPage bounds page numbers fed into an offset so the product with
	// any page size stays well inside a SQL bigint.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// TotalPages is ceil(total/pageSize). A non-positive page size yields 0.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Offset is the row offset of a 1-based page. Pages below 1 clamp to 1 and
// pages above MaxPage clamp to MaxPage.
func Offset(page, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	page = min(max(page, 1), MaxPage)
	return (page - 1) * min(pageSize, MaxPageSize)
}

// Paginate returns the 1-based page of items. Pages below 1 clamp to 1 and
// pages past the end are empty. The result never aliases items.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return []T{}
	}
	if page < 1 {
		page = 1
	}

	if page-1 >= TotalPages(len(items), pageSize) {
		return []T{}
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
