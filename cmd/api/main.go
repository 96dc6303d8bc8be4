// AngelaMos | 2026
// main.go

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/dealership/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := newServeCmd(&configPath)

	root := &cobra.Command{
		Use:           "dealership",
		Short:         "Car dealership marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}

	root.PersistentFlags().StringVar(
		&configPath,
		"config",
		"config.yaml",
		"path to config file",
	)

	root.AddCommand(
		serve,
		newMigrateCmd(&configPath),
		newKeygenCmd(&configPath),
		newRoleCmd(&configPath, "promote", "Grant admin access to a user"),
		newRoleCmd(&configPath, "demote", "Revoke admin access from a user"),
	)

	return root
}

// loadConfig treats a missing default config file as optional so the
// binary can run from environment variables alone.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}
	return config.Load(path)
}

// setupLogger builds the process logger. Unknown levels fall back to info.
// Development builds log source locations.
func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.IsDevelopment()}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
