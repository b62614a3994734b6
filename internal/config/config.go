// Package config loads and validates environment-based configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// Route cache backends.
const (
	RouteCachePostgres = "postgres"
	RouteCacheRedis    = "redis"
	RouteCacheNone     = "none"
)

// Spatial index strategies for proximity ranking.
const (
	SpatialIndexLinear = "linear"
	SpatialIndexRTree  = "rtree"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	DBDSN string
	Port  int

	// OSRMURL is the base URL of the OSRM route service.
	OSRMURL string

	// RouteCache selects where computed directions are cached.
	RouteCache    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SpatialIndex   string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads and validates environment variables. Callers that want .env
// support load the file into the environment first.
// Returns a ConfigError for any missing or invalid value.
func Load() (*Config, error) {
	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		OSRMURL:       envOr("OSRM_URL", "https://router.project-osrm.org"),
		RouteCache:    strings.ToLower(envOr("ROUTE_CACHE", RouteCachePostgres)),
		RedisAddr:     envOr("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SpatialIndex:  strings.ToLower(envOr("SPATIAL_INDEX", SpatialIndexLinear)),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "text"),
	}
	if cfg.DBDSN == "" {
		return nil, &ConfigError{Field: "DB_DSN", Message: "required but not set"}
	}

	var err error
	if cfg.Port, err = intEnv("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	cfg.RequestTimeout = 10 * time.Second
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &ConfigError{Field: "REQUEST_TIMEOUT", Message: "must be a duration such as 10s"}
		}
		cfg.RequestTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate re-checks required fields on an already-constructed Config.
func (c *Config) Validate() error {
	var errs []error
	if c.DBDSN == "" {
		errs = append(errs, &ConfigError{Field: "DB_DSN", Message: "cannot be empty"})
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, &ConfigError{Field: "PORT", Message: "must be between 1 and 65535"})
	}
	switch c.RouteCache {
	case RouteCachePostgres, RouteCacheRedis, RouteCacheNone:
	default:
		errs = append(errs, &ConfigError{Field: "ROUTE_CACHE", Message: "must be one of postgres, redis, none"})
	}
	if c.RouteCache == RouteCacheRedis && c.RedisAddr == "" {
		errs = append(errs, &ConfigError{Field: "REDIS_ADDR", Message: "required when ROUTE_CACHE=redis"})
	}
	if c.RedisDB < 0 {
		errs = append(errs, &ConfigError{Field: "REDIS_DB", Message: "must not be negative"})
	}
	switch c.SpatialIndex {
	case SpatialIndexLinear, SpatialIndexRTree:
	default:
		errs = append(errs, &ConfigError{Field: "SPATIAL_INDEX", Message: "must be one of linear, rtree"})
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, &ConfigError{Field: "REQUEST_TIMEOUT", Message: "must be positive"})
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: "must be a valid integer"}
	}
	return n, nil
}
