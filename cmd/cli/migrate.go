package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iho/pocketbank/internal/infrastructure/config"
	"github.com/iho/pocketbank/internal/infrastructure/postgres"
)

// migration runners, swapped out in tests.
var (
	migrateUp      = postgres.RunMigrations
	migrateDown    = postgres.RunMigrationsDown
	migrateVersion = postgres.MigrationVersion
)

func migrateCmd() *cobra.Command {
	var databaseURL, migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if databaseURL == "" {
				databaseURL = cfg.DatabaseURL
			}
			if migrationsPath == "" {
				migrationsPath = cfg.MigrationsPath
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL (defaults to DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "Migrations directory (defaults to MIGRATIONS_PATH)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrateUp(databaseURL, migrationsPath)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrateDown(databaseURL, migrationsPath)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				version, dirty, err := migrateVersion(databaseURL, migrationsPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}
