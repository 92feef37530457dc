// Package config provides database configuration management.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	appConfig "github.com/festy23/event_checkin/internal/config"
	"github.com/festy23/event_checkin/pkg/retry"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	// ErrUnsupportedDriver is returned for a DB_DRIVER other than postgres or sqlite.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	// ErrMissingConnection is returned when no connection target is configured.
	ErrMissingConnection = errors.New("database connection is not configured")
)

// Config holds database connection configuration.
type Config struct {
	// Driver selects the storage backend: postgres or sqlite.
	Driver string
	// URL is a full PostgreSQL connection URL (DATABASE_URL). Takes priority
	// over the discrete fields below.
	URL      string
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:     strings.ToLower(appConfig.GetEnv("DB_DRIVER", DriverPostgres)),
		URL:        appConfig.GetEnv("DATABASE_URL", ""),
		Host:       appConfig.GetEnv("DB_HOST", ""),
		User:       appConfig.GetEnv("DB_USER", "postgres"),
		Password:   appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:     appConfig.GetEnv("DB_NAME", "event_checkin"),
		Port:       appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:    appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone:   appConfig.GetEnv("DB_TIMEZONE", "UTC"),
		SQLitePath: appConfig.GetEnv("SQLITE_PATH", "checkin.db"),
	}
}

// Validate checks that the selected driver has somewhere to connect to.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.URL == "" && c.Host == "" {
			return fmt.Errorf("%w: set DATABASE_URL or DB_HOST", ErrMissingConnection)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: set SQLITE_PATH", ErrMissingConnection)
		}
	default:
		return fmt.Errorf("%w: %q (must be: %s, %s)", ErrUnsupportedDriver, c.Driver, DriverPostgres, DriverSQLite)
	}
	return nil
}

// IsSQLite reports whether the sqlite driver is selected.
func (c Config) IsSQLite() bool {
	return c.Driver == DriverSQLite
}

// BuildDSN constructs the PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// BuildSQLiteDSN returns the SQLite DSN with foreign keys enforced and a busy
// timeout so concurrent writers wait instead of failing immediately.
func BuildSQLiteDSN(cfg Config) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.SQLitePath)
}

// password returns the secret that must never appear in error messages.
func password(cfg Config) string {
	if cfg.URL != "" {
		if u, err := url.Parse(cfg.URL); err == nil && u.User != nil {
			if p, ok := u.User.Password(); ok {
				return p
			}
		}
		return ""
	}
	return cfg.Password
}

// SanitizeError removes sensitive information (password) from error messages.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	if secret := password(cfg); secret != "" {
		errMsg = strings.ReplaceAll(errMsg, secret, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", errMsg)
}

// LoadRetryConfigFromEnv loads retry configuration for the given driver from
// environment variables.
func LoadRetryConfigFromEnv(driver string) retry.Config {
	cfg := retry.PostgresConfig()
	if driver == DriverSQLite {
		cfg = retry.SQLiteConfig()
	}
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	cfg.Multiplier = appConfig.GetEnvFloat("DB_RETRY_MULTIPLIER", cfg.Multiplier)
	return cfg
}
