// Package migrate applies the versioned schema for the selected storage driver.
package migrate

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	appConfig "github.com/festy23/event_checkin/internal/config"
	dbConfig "github.com/festy23/event_checkin/internal/database/config"
)

//go:embed migrations
var embedded embed.FS

// GetMigrationsPath returns the directory overriding the embedded migrations,
// or an empty string when the embedded set should be used.
func GetMigrationsPath() string {
	return appConfig.GetEnv("MIGRATIONS_PATH", "")
}

// Migrate applies all pending migrations for driver. Each driver keeps its own
// migration set under migrations/<driver>.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	if driver != dbConfig.DriverPostgres && driver != dbConfig.DriverSQLite {
		return fmt.Errorf("%w: %q", dbConfig.ErrUnsupportedDriver, driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	src, err := openSource(driver)
	if err != nil {
		return err
	}

	var (
		dbDriver database.Driver
		closeFn  func() error
	)
	if driver == dbConfig.DriverPostgres {
		// A dedicated connection is handed back to the pool when the driver closes.
		conn, connErr := sqlDB.Conn(ctx)
		if connErr != nil {
			return fmt.Errorf("failed to acquire connection: %w", connErr)
		}
		pgDriver, pgErr := postgres.WithConnection(ctx, conn, &postgres.Config{})
		if pgErr != nil {
			_ = conn.Close()
			return fmt.Errorf("failed to create postgres driver: %w", pgErr)
		}
		dbDriver, closeFn = pgDriver, pgDriver.Close
	} else {
		// Closing the sqlite3 driver would close the shared *sql.DB, so it is left open.
		liteDriver, liteErr := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
		if liteErr != nil {
			return fmt.Errorf("failed to create sqlite driver: %w", liteErr)
		}
		dbDriver, closeFn = liteDriver, func() error { return nil }
	}
	defer func() { _ = closeFn() }()

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// openSource returns the migration source for driver, preferring
// MIGRATIONS_PATH/<driver> on disk over the embedded files.
func openSource(driver string) (source.Driver, error) {
	if dir := GetMigrationsPath(); dir != "" {
		migrationsPath, err := filepath.Abs(filepath.Join(dir, driver))
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for migrations: %w", err)
		}
		if _, statErr := os.Stat(migrationsPath); os.IsNotExist(statErr) {
			return nil, fmt.Errorf("migrations directory does not exist: %s", migrationsPath)
		}
		src, err := iofs.New(os.DirFS(migrationsPath), ".")
		if err != nil {
			return nil, fmt.Errorf("failed to open migrations: %w", err)
		}
		return src, nil
	}

	src, err := iofs.New(embedded, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return src, nil
}
