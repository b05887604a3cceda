package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/handlers"
	"github.com/SscSPs/pharmacy_moneybox/internal/middleware"
	"github.com/SscSPs/pharmacy_moneybox/internal/platform/config"
	"github.com/SscSPs/pharmacy_moneybox/internal/repositories/database/pgsql"
	"github.com/SscSPs/pharmacy_moneybox/pkg/database"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title Pharmacy Money Box API
// @version 1.0
// @description Cash ledger for pharmacy branches: money boxes, postings, reconciliation and exchange rates.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Application terminated with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown on signal or when the server goroutine fails.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		logger.Info("Server stopped gracefully")
		return nil
	})

	return g.Wait()
}
