package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/event_checkin/internal/database/config"
)

func sqliteConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "checkin.db"),
	}
}

func TestNewWithConfig(t *testing.T) {
	t.Run("sqlite file is created", func(t *testing.T) {
		cfg := sqliteConfig(t)

		db, err := NewWithConfig(context.Background(), cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = Close(db) })

		assert.FileExists(t, cfg.SQLitePath)

		stats, err := GetStats(db)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.MaxOpenConnections)
	})

	t.Run("sqlite enforces foreign keys", func(t *testing.T) {
		db, err := NewWithConfig(context.Background(), sqliteConfig(t))
		require.NoError(t, err)
		t.Cleanup(func() { _ = Close(db) })

		var enabled int
		require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
		assert.Equal(t, 1, enabled)
	})

	t.Run("invalid config is rejected before connecting", func(t *testing.T) {
		db, err := NewWithConfig(context.Background(), config.Config{Driver: config.DriverPostgres})
		assert.ErrorIs(t, err, config.ErrMissingConnection)
		assert.Nil(t, db)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		db, err := NewWithConfig(context.Background(), config.Config{Driver: "oracle"})
		assert.ErrorIs(t, err, config.ErrUnsupportedDriver)
		assert.Nil(t, db)
	})
}

func TestNew(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "env.db"))

	db, err := New(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestHealthCheck(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		assert.EqualError(t, HealthCheck(context.Background(), nil), "database connection is nil")
	})

	t.Run("closed database", func(t *testing.T) {
		db, err := NewWithConfig(context.Background(), sqliteConfig(t))
		require.NoError(t, err)
		require.NoError(t, Close(db))

		err = HealthCheck(context.Background(), db)
		assert.ErrorContains(t, err, "database ping failed")
	})
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))
}

func TestGetStats(t *testing.T) {
	stats, err := GetStats(nil)
	assert.Nil(t, stats)
	assert.EqualError(t, err, "database connection is nil")
}
