package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/homelab/cornerstone/internal/config"
	"github.com/jbweber/homelab/cornerstone/internal/migrations"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var target int64

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: "Apply all pending migrations. With --to, SQLite migrations newer than\n" +
			"the given version are reverted afterwards.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()

			if cfg.Driver == config.DriverPostgres {
				if cmd.Flags().Changed("to") {
					return fmt.Errorf("--to is only supported with the %s driver", config.DriverSQLite)
				}
				db, err := cfg.OpenGorm(ctx)
				if err != nil {
					return err
				}
				if sqlDB, err := db.DB(); err == nil {
					defer closer(sqlDB.Close)()
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema migrated")
				return nil
			}

			db, err := cfg.InitializeDatabase(ctx)
			if err != nil {
				return err
			}
			defer closer(db.Close)()

			migrator := migrations.NewDefaultMigrator(db)
			if cmd.Flags().Changed("to") {
				if err := migrator.Rollback(ctx, target); err != nil {
					return err
				}
			}

			version, err := migrator.GetCurrentVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}

	cmd.Flags().Int64Var(&target, "to", 0, "revert SQLite migrations newer than this version")
	return cmd
}
