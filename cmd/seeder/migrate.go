// cmd/seeder/migrate.go
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ammerola/stockflow-be/internal/adapters/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		retries, _ := cmd.Flags().GetInt("retries")
		return db.RunMigrationsWithRetry(cmd.Context(), migrationConfig(), slogger, retries)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(m *db.Migrator) error {
			return m.Down(cmd.Context())
		})
	},
}

var migrateForceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Mark VERSION as applied and clear the dirty flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withMigrator(cmd.Context(), func(m *db.Migrator) error {
			return m.Force(cmd.Context(), version)
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(m *db.Migrator) error {
			status, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "current version: %d (dirty: %t)\n", status.CurrentVersion, status.IsDirty)
			for _, applied := range status.Applied {
				fmt.Fprintf(out, "  %d dirty=%t\n", applied.Version, applied.Dirty)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateForceCmd, migrateStatusCmd)

	migrateUpCmd.Flags().Int("retries", 3, "Attempts before giving up")
}

func migrationConfig() *db.MigrationConfig {
	return &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
	}
}

func withMigrator(ctx context.Context, fn func(*db.Migrator) error) error {
	m, err := db.NewMigrator(ctx, migrationConfig(), slogger)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}
