package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt returns key parsed as an int. Unset or malformed values yield fallback.
func GetEnvInt(key string, fallback int) int {
	return parseEnv(key, fallback, strconv.Atoi)
}

// GetEnvDuration returns key parsed by time.ParseDuration ("500ms", "2s").
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	return parseEnv(key, fallback, time.ParseDuration)
}

// GetEnvBool returns key parsed by strconv.ParseBool.
func GetEnvBool(key string, fallback bool) bool {
	return parseEnv(key, fallback, strconv.ParseBool)
}

// GetEnvFloat returns key parsed as a float64.
func GetEnvFloat(key string, fallback float64) float64 {
	return parseEnv(key, fallback, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// parseEnv trims the value of key and parses it, falling back on any failure.
func parseEnv[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		return fallback
	}
	return value
}
