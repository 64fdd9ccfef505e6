package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/accounts/internal/database"
)

// RunMigrations applies all pending migrations for driver ("postgres" or "mysql").
// The migration files are read from the migrations directory of the working directory.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	m, err := migrate.New(migrationTarget(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationTarget returns the migration source URL and the database URL for driver.
// golang-migrate wants a URL, while the MySQL driver DSN has no scheme.
func migrationTarget(driver, connectionString string) (sourceURL, databaseURL string) {
	if driver != database.DriverMySQL {
		return "file://migrations/postgresql", connectionString
	}
	if !strings.HasPrefix(connectionString, "mysql://") {
		connectionString = "mysql://" + connectionString
	}
	return "file://migrations/mysql", connectionString
}
