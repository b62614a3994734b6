package config

import (
	"errors"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DB_DSN", "PORT", "OSRM_URL", "ROUTE_CACHE", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "SPATIAL_INDEX", "REQUEST_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://localhost/hospitals")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.RouteCache != RouteCachePostgres {
		t.Errorf("RouteCache = %q, want %q", cfg.RouteCache, RouteCachePostgres)
	}
	if cfg.SpatialIndex != SpatialIndexLinear {
		t.Errorf("SpatialIndex = %q, want %q", cfg.SpatialIndex, SpatialIndexLinear)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.RedisAddr != "127.0.0.1:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.OSRMURL != "https://router.project-osrm.org" {
		t.Errorf("OSRMURL = %q", cfg.OSRMURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://localhost/hospitals")
	t.Setenv("PORT", "9090")
	t.Setenv("ROUTE_CACHE", "Redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SPATIAL_INDEX", "rtree")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.RouteCache != RouteCacheRedis || cfg.RedisDB != 2 ||
		cfg.SpatialIndex != SpatialIndexRTree || cfg.RequestTimeout != 3*time.Second {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{"missing dsn", map[string]string{}, "DB_DSN"},
		{"bad port", map[string]string{"DB_DSN": "x", "PORT": "http"}, "PORT"},
		{"port out of range", map[string]string{"DB_DSN": "x", "PORT": "70000"}, "PORT"},
		{"bad cache", map[string]string{"DB_DSN": "x", "ROUTE_CACHE": "memcached"}, "ROUTE_CACHE"},
		{"bad index", map[string]string{"DB_DSN": "x", "SPATIAL_INDEX": "kdtree"}, "SPATIAL_INDEX"},
		{"bad timeout", map[string]string{"DB_DSN": "x", "REQUEST_TIMEOUT": "soon"}, "REQUEST_TIMEOUT"},
		{"bad redis db", map[string]string{"DB_DSN": "x", "REDIS_DB": "one"}, "REDIS_DB"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error %v is not a *ConfigError", err)
			}
			if ce.Field != tc.field {
				t.Errorf("field = %q, want %q", ce.Field, tc.field)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := &Config{Port: 0, RouteCache: "x", SpatialIndex: "y"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	fields := map[string]bool{}
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ce *ConfigError
		if errors.As(e, &ce) {
			fields[ce.Field] = true
		}
	}
	for _, f := range []string{"DB_DSN", "PORT", "ROUTE_CACHE", "SPATIAL_INDEX", "REQUEST_TIMEOUT"} {
		if !fields[f] {
			t.Errorf("joined error is missing field %s", f)
		}
	}
}
