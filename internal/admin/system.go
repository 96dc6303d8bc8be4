// AngelaMos | 2026
// system.go

package admin

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/carterperez-dev/dealership/internal/core"
)

const probeTimeout = 2 * time.Second

type SystemStatsResponse struct {
	Uptime   string          `json:"uptime"`
	Database DependencyStats `json:"database"`
	Redis    DependencyStats `json:"redis"`
	Runtime  RuntimeStats    `json:"runtime"`
}

// DependencyStats is one backing store. Pool is omitted when the store is
// not configured.
type DependencyStats struct {
	Healthy bool           `json:"healthy"`
	Latency string         `json:"latency,omitempty"`
	Pool    map[string]any `json:"pool,omitempty"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	HeapAlloc    uint64 `json:"heap_alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}

// GetSystemStats pings the database and Redis in parallel and reports
// their pool counters alongside Go runtime figures. A failed ping marks the
// store unhealthy but never fails the request.
func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	resp := SystemStatsResponse{
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Runtime: readRuntimeStats(),
	}

	var wg sync.WaitGroup
	if h.database != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp.Database = probe(ctx, h.database.Ping)
			s := h.database.Stats()
			resp.Database.Pool = map[string]any{
				"max_open":      s.MaxOpenConnections,
				"open":          s.OpenConnections,
				"in_use":        s.InUse,
				"idle":          s.Idle,
				"wait_count":    s.WaitCount,
				"wait_duration": s.WaitDuration.String(),
			}
		}()
	}
	if h.redis != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp.Redis = probe(ctx, h.redis.Ping)
			if s := h.redis.PoolStats(); s != nil {
				resp.Redis.Pool = map[string]any{
					"hits":        s.Hits,
					"misses":      s.Misses,
					"timeouts":    s.Timeouts,
					"total_conns": s.TotalConns,
					"idle_conns":  s.IdleConns,
				}
			}
		}()
	}
	wg.Wait()

	core.OK(w, resp)
}

func probe(ctx context.Context, ping func(context.Context) error) DependencyStats {
	start := time.Now()
	err := ping(ctx)
	return DependencyStats{
		Healthy: err == nil,
		Latency: time.Since(start).String(),
	}
}

func readRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
	}
}
