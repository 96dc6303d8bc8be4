// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/dealership/internal/core"
)

type RateLimitConfig struct {
	Limit      redis_rate.Limit
	KeyFunc    func(*http.Request) string
	Scope      string
	FailOpen   bool
	BypassFunc func(*http.Request) bool
}

type RateLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	config   RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}

	return &RateLimiter{
		limiter:  redis_rate.NewLimiter(rdb),
		fallback: newLocalLimiter(),
		config:   cfg,
	}
}

// After runs the limiter behind authenticator so key functions that read the
// principal see it.
func (rl *RateLimiter) After(
	authenticator func(http.Handler) http.Handler,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return authenticator(rl.Handler(next))
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.config.BypassFunc != nil && rl.config.BypassFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := rl.config.KeyFunc(r)
		if rl.config.Scope != "" {
			key = key + ":scope:" + rl.config.Scope
		}

		res, err := rl.limiter.Allow(r.Context(), key, rl.config.Limit)
		if err != nil {
			if !rl.config.FailOpen {
				slog.Error("rate limiter store unavailable", "error", err, "key", key)
				core.JSON(w, http.StatusServiceUnavailable, core.ErrorResponse{
					Error: "service unavailable",
					Code:  "RATE_LIMIT_UNAVAILABLE",
				})
				return
			}
			slog.Warn("rate limiter store unavailable, using local bucket",
				"error", err,
				"key", key,
			)
			res = rl.fallback.allow(key, rl.config.Limit)
		}

		setRateLimitHeaders(w, res, rl.config.Limit)

		if res.Allowed == 0 {
			slog.Debug("rate limit exceeded", "key", key, "path", r.URL.Path)
			writeRateLimitExceeded(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// setRateLimitHeaders writes both the X-RateLimit-* trio and the IETF
// RateLimit / RateLimit-Policy pair.
func setRateLimitHeaders(w http.ResponseWriter, res *redis_rate.Result, limit redis_rate.Limit) {
	reset := int(res.ResetAfter / time.Second)

	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period/time.Second)))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", res.Remaining, reset))
}

func writeRateLimitExceeded(w http.ResponseWriter, res *redis_rate.Result) {
	wait := max(int(res.RetryAfter/time.Second), 1)

	w.Header().Set("Retry-After", strconv.Itoa(wait))
	core.JSON(w, http.StatusTooManyRequests, core.ErrorResponse{
		Error: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds.", wait),
		Code:  "RATE_LIMITED",
	})
}

// Per builds a limit of rate requests per period. A non-positive period
// falls back to one minute.
func Per(rate, burst int, period time.Duration) redis_rate.Limit {
	if period <= 0 {
		period = time.Minute
	}
	return redis_rate.Limit{
		Rate:   rate,
		Burst:  burst,
		Period: period,
	}
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return Per(rate, burst, time.Minute)
}
