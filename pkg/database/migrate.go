package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrateUp applies every pending up migration from migrationsPath (e.g. "file://migrations").
func MigrateUp(databaseURL, migrationsPath string, logger *slog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No new migrations to apply.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("Database migrations applied successfully.")
		return nil
	})
}

// MigrateDown reverts the last steps migrations. A non-positive steps reverts all of them.
func MigrateDown(databaseURL, migrationsPath string, steps int, logger *slog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		var err error
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No migrations to revert.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to revert migrations: %w", err)
		}
		logger.Info("Database migrations reverted.", slog.Int("steps", steps))
		return nil
	})
}

// MigrationVersion reports the current schema version and whether it is dirty.
func MigrationVersion(databaseURL, migrationsPath string) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})
	return version, dirty, err
}

// withMigrator opens a short-lived database/sql connection through the pgx stdlib driver,
// since golang-migrate does not accept a pgxpool.
func withMigrator(databaseURL, migrationsPath string, fn func(m *migrate.Migrate) error) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer migrationDB.Close()

	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	runErr := fn(m)
	sourceErr, dbErr := m.Close()
	return errors.Join(runErr, sourceErr, dbErr)
}
