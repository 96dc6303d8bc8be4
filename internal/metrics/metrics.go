// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated registry served at /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Signups counts account creation attempts by outcome.
	Signups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealership_signups_total",
			Help: "Account creation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// UploadedFiles counts individual files in upload batches.
	UploadedFiles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealership_uploaded_files_total",
			Help: "Files processed by the upload endpoint by outcome.",
		},
		[]string{"outcome"},
	)

	// GuardRedirects counts route guard redirects by target.
	GuardRedirects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealership_guard_redirects_total",
			Help: "Page navigations redirected by the route guard.",
		},
		[]string{"target"},
	)
)

var regOnce sync.Once

// Register adds every collector to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			Signups,
			UploadedFiles,
			GuardRedirects,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
