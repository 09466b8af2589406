package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trngaudit/adapters/db/migrations"
	"trngaudit/adapters/postgres"
	"trngaudit/internal/errors"
)

func newMigrateCmd(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|status]",
		Short: "Run ledger database migrations",
		Long: `Run ledger schema migrations.

Commands:
  up      Apply all pending migrations
  status  Show migration status`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, globals)
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errors.ConfigInvalid("migrate requires AUDIT_DATABASE_URL")
			}

			logger := newLogger(cmd, cfg)
			switch args[0] {
			case "up":
				// Open applies pending migrations
				db, err := postgres.Open(cmd.Context(), cfg.Database, logger)
				if err != nil {
					return err
				}
				return db.Close()
			case "status":
				db, err := postgres.Connect(cmd.Context(), cfg.Database)
				if err != nil {
					return err
				}
				defer db.Close()

				status, err := migrations.NewMigrator(db, logger).Status(cmd.Context())
				if err != nil {
					return err
				}
				applied := 0
				for _, s := range status {
					state := "pending"
					if s.Applied {
						state = "applied"
						applied++
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %s_%s: %s\n", s.Version, s.Name, state)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nSummary: %d/%d migrations applied\n", applied, len(status))
				return nil
			default:
				return errors.InvalidInput(fmt.Sprintf("unknown migration action: %s", args[0]))
			}
		},
	}
	return cmd
}
