// AngelaMos | 2026
// dashboard.go

package admin

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/dealership/internal/core"
)

type DashboardStatsResponse struct {
	Cars      CountSummary `json:"cars"`
	Inquiries CountSummary `json:"inquiries"`
	Customers int          `json:"customers"`
}

type CountSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

func newCountSummary(byStatus map[string]int) CountSummary {
	total := 0
	for _, n := range byStatus {
		total += n
	}
	return CountSummary{Total: total, ByStatus: byStatus}
}

// GetDashboardStats returns inventory, inquiry and customer counts. The
// three queries run concurrently and any failure fails the request.
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var (
		cars      map[string]int
		inquiries map[string]int
		customers int
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		var err error
		cars, err = h.cars.CountByStatus(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		inquiries, err = h.inquiries.CountByStatus(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = h.customers.CountCustomers(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, DashboardStatsResponse{
		Cars:      newCountSummary(cars),
		Inquiries: newCountSummary(inquiries),
		Customers: customers,
	})
}
