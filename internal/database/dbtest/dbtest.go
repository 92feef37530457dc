// Package dbtest opens migrated databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/festy23/event_checkin/internal/database/config"
	"github.com/festy23/event_checkin/internal/database/database"
	"github.com/festy23/event_checkin/internal/database/migrate"
)

// NewSQLite returns a migrated SQLite database in a per-test temp directory,
// closed automatically at cleanup.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.Config{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "checkin.db"),
	}
	db, err := database.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migrate.Migrate(context.Background(), db, config.DriverSQLite))
	return db
}
