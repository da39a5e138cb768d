package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/credvault/internal/database"
)

// migrationsPath returns the migration source for driver.
func migrationsPath(driver string) (string, error) {
	switch driver {
	case database.DriverPostgres:
		return "file://migrations/postgresql", nil
	case database.DriverMySQL:
		return "file://migrations/mysql", nil
	default:
		return "", fmt.Errorf("failed to create migrate instance: unsupported database driver %q", driver)
	}
}

// RunMigrations applies all pending migrations for driver. No pending
// migrations is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	source, err := migrationsPath(driver)
	if err != nil {
		return err
	}

	// golang-migrate selects its database driver from the URL scheme, and MySQL DSNs carry none.
	databaseURL := connectionString
	if driver == database.DriverMySQL {
		databaseURL = "mysql://" + connectionString
	}

	m, err := migrate.New(source, databaseURL)
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
