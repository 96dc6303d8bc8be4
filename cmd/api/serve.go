// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/dealership/internal/config"
	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/server"
)

const drainDelay = 5 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and page guard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
}

// infra is the set of long-lived connections. closers run in reverse
// order of acquisition.
type infra struct {
	db        *core.Database
	redis     *core.Redis
	telemetry *core.Telemetry
	closers   []namedCloser
}

type namedCloser struct {
	name  string
	close func(context.Context) error
}

func (in *infra) onClose(name string, fn func(context.Context) error) {
	in.closers = append(in.closers, namedCloser{name, fn})
}

func (in *infra) Close(ctx context.Context, logger *slog.Logger) {
	for i := len(in.closers) - 1; i >= 0; i-- {
		c := in.closers[i]
		if err := c.close(ctx); err != nil {
			logger.Error("close failed", "resource", c.name, "error", err)
		}
	}
}

func openInfra(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*infra, error) {
	in := &infra{}

	if cfg.Otel.Enabled {
		tel, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		} else {
			in.telemetry = tel
			in.onClose("telemetry", tel.Shutdown)
			logger.Info("tracing enabled", "endpoint", cfg.Otel.Endpoint)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		in.Close(ctx, logger)
		return nil, err
	}
	in.db = db
	in.onClose("database", func(context.Context) error { return db.Close() })
	logger.Info("database connected", "max_open_conns", cfg.Database.MaxOpenConns)

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(db.DB.DB, "up"); err != nil {
			in.Close(ctx, logger)
			return nil, err
		}
		logger.Info("migrations applied")
	}

	rdb, err := core.NewRedis(ctx, cfg.Redis, cfg.App.Name)
	if err != nil {
		in.Close(ctx, logger)
		return nil, err
	}
	in.redis = rdb
	in.onClose("redis", func(context.Context) error { return rdb.Close() })
	logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)

	return in, nil
}

func run(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	in, err := openInfra(ctx, cfg, logger)
	if err != nil {
		return err
	}

	shutdownBudget := cfg.Server.ShutdownTimeout + drainDelay + 5*time.Second
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownBudget)
		defer cancel()
		in.Close(closeCtx, logger)
		logger.Info("stopped")
	}()

	a, err := wire(cfg, in, logger)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: a.health,
		Logger:        logger,
	})
	a.mount(srv.Router(), cfg)

	a.janitor.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownBudget)
		defer cancel()

		err := srv.Shutdown(shutdownCtx, drainDelay)
		a.janitor.Stop(shutdownCtx)
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
