// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/dealership/internal/core"
)

const checkTimeout = 5 * time.Second

type Checker interface {
	Ping(ctx context.Context) error
}

// Dependency is one backing service probed by readiness. Optional
// dependencies are reported but never make the instance unready.
type Dependency struct {
	Name     string
	Checker  Checker
	Optional bool
}

type state int32

const (
	stateServing state = iota
	stateNotReady
	stateDraining
)

var stateNames = map[state]string{
	stateNotReady: "not_ready",
	stateDraining: "shutting_down",
}

type Handler struct {
	deps  []Dependency
	state atomic.Int32
}

func NewHandler(deps ...Dependency) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

// SetReady toggles readiness. It has no effect once draining has started.
func (h *Handler) SetReady(ready bool) {
	from, to := stateServing, stateNotReady
	if ready {
		from, to = to, from
	}
	h.state.CompareAndSwap(int32(from), int32(to))
}

// Drain fails every probe from now on so load balancers stop routing here
// before the listener closes.
func (h *Handler) Drain() {
	h.state.Store(int32(stateDraining))
}

func (h *Handler) current() state {
	return state(h.state.Load())
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.current() == stateDraining {
		writeProbe(w, http.StatusServiceUnavailable, StatusResponse{Status: stateNames[stateDraining]})
		return
	}
	writeProbe(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if s := h.current(); s != stateServing {
		writeProbe(w, http.StatusServiceUnavailable, StatusResponse{Status: stateNames[s]})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := ReadinessResponse{Status: "ok", Checks: h.probeAll(ctx)}
	code := http.StatusOK
	for i, c := range resp.Checks {
		if !c.Healthy && !h.deps[i].Optional {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	writeProbe(w, code, resp)
}

// probeAll pings every dependency concurrently. Results keep the
// registration order.
func (h *Handler) probeAll(ctx context.Context) []HealthCheck {
	out := make([]HealthCheck, len(h.deps))

	var wg sync.WaitGroup
	for i, dep := range h.deps {
		wg.Go(func() {
			out[i] = probe(ctx, dep)
		})
	}
	wg.Wait()

	return out
}

func probe(ctx context.Context, dep Dependency) HealthCheck {
	if dep.Checker == nil {
		return HealthCheck{Name: dep.Name, Message: "checker not configured"}
	}

	start := time.Now()
	err := dep.Checker.Ping(ctx)

	hc := HealthCheck{
		Name:    dep.Name,
		Healthy: err == nil,
		Latency: time.Since(start).String(),
	}
	if err != nil {
		hc.Message = "ping failed"
	}
	return hc
}

func writeProbe(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Cache-Control", "no-store")
	core.JSON(w, status, body)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
