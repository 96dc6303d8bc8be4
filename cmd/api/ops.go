// AngelaMos | 2026
// ops.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/dealership/internal/auth"
	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/user"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|reset]",
		Short:     "Run database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}

			db, err := core.NewDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process exits next

			return core.Migrate(db.DB.DB, command)
		},
	}
}

func newKeygenCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate the ES256 key pair used to sign access tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}

			if err := auth.GenerateKeyPair(
				cfg.JWT.PrivateKeyPath,
				cfg.JWT.PublicKeyPath,
			); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n",
				cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
			return nil
		},
	}
}

// newRoleCmd builds promote and demote. Access levels are only ever changed
// from the operator CLI.
func newRoleCmd(configPath *string, use, short string) *cobra.Command {
	role := user.RoleUser
	if use == "promote" {
		role = user.RoleAdmin
	}

	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}

			db, err := core.NewDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process exits next

			svc := user.NewService(user.NewRepository(db.DB))
			if err := svc.SetRole(cmd.Context(), args[0], role); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], role)
			return nil
		},
	}
}
