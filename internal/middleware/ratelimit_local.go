// AngelaMos | 2026
// ratelimit_local.go

package middleware

import (
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"golang.org/x/time/rate"
)

const localBucketTTL = 10 * time.Minute

// localLimiter is the per-process token bucket used while Redis is
// unreachable. Limits are per instance, not global. Idle buckets are swept
// on access.
type localLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	lastSweep time.Time
	now       func() time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{
		buckets: make(map[string]*localBucket),
		now:     time.Now,
	}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > localBucketTTL {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > localBucketTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	interval := limit.Period / time.Duration(max(limit.Rate, 1))

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{
			limiter: rate.NewLimiter(rate.Every(interval), max(limit.Burst, 1)),
		}
		l.buckets[key] = b
	}
	b.lastSeen = now

	res := &redis_rate.Result{
		Limit:      limit,
		RetryAfter: -1,
		ResetAfter: interval,
	}

	if b.limiter.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}
	res.Remaining = max(int(b.limiter.TokensAt(now)), 0)

	return res
}
