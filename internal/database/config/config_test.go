package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearDBEnv unsets every variable read by LoadConfigFromEnv for the test.
func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_PORT", "DB_SSLMODE", "DB_TIMEZONE", "SQLITE_PATH",
		"DB_RETRY_MAX_ATTEMPTS", "DB_RETRY_INITIAL_DELAY", "DB_RETRY_MAX_DELAY", "DB_RETRY_MULTIPLIER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		clearDBEnv(t)

		cfg := LoadConfigFromEnv()
		expected := Config{
			Driver:     DriverPostgres,
			User:       "postgres",
			Password:   "postgres",
			DBName:     "event_checkin",
			Port:       "5432",
			SSLMode:    "disable",
			TimeZone:   "UTC",
			SQLitePath: "checkin.db",
		}
		assert.Equal(t, expected, cfg)
	})

	t.Run("custom values", func(t *testing.T) {
		clearDBEnv(t)
		t.Setenv("DB_DRIVER", "SQLite")
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/checkin")
		t.Setenv("DB_HOST", "db")
		t.Setenv("SQLITE_PATH", "/data/event.db")

		cfg := LoadConfigFromEnv()
		assert.Equal(t, DriverSQLite, cfg.Driver)
		assert.Equal(t, "postgres://u:p@db:5432/checkin", cfg.URL)
		assert.Equal(t, "db", cfg.Host)
		assert.Equal(t, "/data/event.db", cfg.SQLitePath)
		assert.True(t, cfg.IsSQLite())
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "postgres with url", cfg: Config{Driver: DriverPostgres, URL: "postgres://localhost/db"}},
		{name: "postgres with host", cfg: Config{Driver: DriverPostgres, Host: "localhost"}},
		{name: "postgres without target", cfg: Config{Driver: DriverPostgres}, wantErr: ErrMissingConnection},
		{name: "sqlite with path", cfg: Config{Driver: DriverSQLite, SQLitePath: "checkin.db"}},
		{name: "sqlite without path", cfg: Config{Driver: DriverSQLite, SQLitePath: "  "}, wantErr: ErrMissingConnection},
		{name: "unknown driver", cfg: Config{Driver: "mysql"}, wantErr: ErrUnsupportedDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuildDSN(t *testing.T) {
	t.Run("discrete fields", func(t *testing.T) {
		cfg := Config{
			Host: "localhost", User: "postgres", Password: "secret", DBName: "event_checkin",
			Port: "5432", SSLMode: "disable", TimeZone: "UTC",
		}
		assert.Equal(t,
			"host=localhost user=postgres password=secret dbname=event_checkin port=5432 sslmode=disable TimeZone=UTC",
			BuildDSN(cfg))
	})

	t.Run("url wins", func(t *testing.T) {
		cfg := Config{URL: "postgres://u:p@db/checkin", Host: "ignored"}
		assert.Equal(t, "postgres://u:p@db/checkin", BuildDSN(cfg))
	})
}

func TestBuildSQLiteDSN(t *testing.T) {
	dsn := BuildSQLiteDSN(Config{SQLitePath: "/tmp/checkin.db"})
	assert.Equal(t, "file:/tmp/checkin.db?_foreign_keys=on&_busy_timeout=5000", dsn)
}

func TestSanitizeError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, SanitizeError(nil, Config{}))
	})

	t.Run("password from fields", func(t *testing.T) {
		cfg := Config{Host: "localhost", User: "postgres", Password: "hunter2"}
		err := SanitizeError(errors.New("password=hunter2 rejected"), cfg)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "hunter2")
		assert.Contains(t, err.Error(), "password=*** rejected")
		assert.Contains(t, err.Error(), "failed to connect to database")
	})

	t.Run("password from url", func(t *testing.T) {
		cfg := Config{URL: "postgres://admin:s3cr3t@db:5432/checkin"}
		err := SanitizeError(errors.New("dial postgres://admin:s3cr3t@db:5432/checkin: refused"), cfg)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "s3cr3t")
	})

	t.Run("url without password", func(t *testing.T) {
		cfg := Config{URL: "postgres://db/checkin"}
		err := SanitizeError(errors.New("connection refused"), cfg)
		assert.EqualError(t, err, "failed to connect to database: connection refused")
	})
}

func TestLoadRetryConfigFromEnv(t *testing.T) {
	t.Run("postgres defaults", func(t *testing.T) {
		clearDBEnv(t)
		cfg := LoadRetryConfigFromEnv(DriverPostgres)
		assert.Equal(t, 5, cfg.MaxAttempts)
		assert.Equal(t, time.Second, cfg.InitialDelay)
		assert.Contains(t, cfg.RetryableErrors, "connection refused")
	})

	t.Run("sqlite defaults", func(t *testing.T) {
		clearDBEnv(t)
		cfg := LoadRetryConfigFromEnv(DriverSQLite)
		assert.Equal(t, 100*time.Millisecond, cfg.InitialDelay)
		assert.Contains(t, cfg.RetryableErrors, "database is locked")
	})

	t.Run("overrides", func(t *testing.T) {
		clearDBEnv(t)
		t.Setenv("DB_RETRY_MAX_ATTEMPTS", "2")
		t.Setenv("DB_RETRY_INITIAL_DELAY", "250ms")
		t.Setenv("DB_RETRY_MAX_DELAY", "1s")
		t.Setenv("DB_RETRY_MULTIPLIER", "1.5")

		cfg := LoadRetryConfigFromEnv(DriverPostgres)
		assert.Equal(t, 2, cfg.MaxAttempts)
		assert.Equal(t, 250*time.Millisecond, cfg.InitialDelay)
		assert.Equal(t, time.Second, cfg.MaxDelay)
		assert.Equal(t, 1.5, cfg.Multiplier)
	})
}
