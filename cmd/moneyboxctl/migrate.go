package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/pharmacy_moneybox/internal/platform/config"
	"github.com/SscSPs/pharmacy_moneybox/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, slog.Default()); err != nil {
				return err
			}
			return printVersion(cmd, cfg)
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := database.MigrateDown(cfg.DatabaseURL, cfg.MigrationsPath, steps, slog.Default()); err != nil {
				return err
			}
			return printVersion(cmd, cfg)
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return printVersion(cmd, cfg)
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

func printVersion(cmd *cobra.Command, cfg *config.Config) error {
	version, dirty, err := database.MigrationVersion(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return err
	}
	suffix := ""
	if dirty {
		suffix = " (dirty)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d%s\n", version, suffix)
	return nil
}
