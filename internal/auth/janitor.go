// AngelaMos | 2026
// janitor.go

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	expiredTokenGrace = 24 * time.Hour
	purgeTimeout      = 30 * time.Second
)

type tokenPurger interface {
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Janitor periodically deletes refresh tokens that are long past expiry.
type Janitor struct {
	cron   *cron.Cron
	repo   tokenPurger
	logger *slog.Logger
}

func NewJanitor(repo tokenPurger, schedule string, logger *slog.Logger) (*Janitor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	j := &Janitor{
		cron:   cron.New(),
		repo:   repo,
		logger: logger,
	}

	if _, err := j.cron.AddFunc(schedule, j.purge); err != nil {
		return nil, fmt.Errorf("schedule token cleanup %q: %w", schedule, err)
	}

	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts scheduling and waits for a running purge to finish or ctx to
// expire.
func (j *Janitor) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (j *Janitor) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	n, err := j.repo.DeleteExpired(ctx, expiredTokenGrace)
	if err != nil {
		j.logger.Error("refresh token cleanup failed", "error", err)
		return
	}

	if n > 0 {
		j.logger.Info("refresh tokens purged", "count", n)
	}
}
