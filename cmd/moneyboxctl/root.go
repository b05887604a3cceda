package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/core/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/platform/config"
	"github.com/SscSPs/pharmacy_moneybox/internal/repositories/database/pgsql"
	"github.com/SscSPs/pharmacy_moneybox/pkg/database"
	"github.com/spf13/cobra"
)

// operatorActor is recorded as the creator of changes made from the CLI unless --actor is given.
const operatorActor = "moneyboxctl"

var actorID string

// newRootCmd builds the command tree. Tests build a fresh tree per run.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moneyboxctl",
		Short: "Operator CLI for the pharmacy money box service",
		Long: `moneyboxctl runs database migrations, manages exchange rates, verifies money box
logs against their aggregates and issues development tokens.

Configuration is read from the environment (and .env) exactly like the server.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", operatorActor, "user ID recorded on changes")

	rootCmd.AddCommand(newMigrateCmd(), newRatesCmd(), newVerifyCmd(), newTokenCmd())
	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// withServices connects to the database and hands the wired services to fn.
func withServices(ctx context.Context, fn func(cfg *config.Config, svc *portssvc.ServiceContainer) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(pool)

	return fn(cfg, services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool)))
}
