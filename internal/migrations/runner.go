// Package migrations applies the embedded SQL schema at startup and from
// the hospitalctl migrate command.
//
// Files are named NNN_description.sql and run in lexicographic order, each
// in its own transaction. Applied versions are recorded in schema_migrations,
// so Run is idempotent. 000_migrations_table.sql must stay first.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var sqlFiles embed.FS

// RequiredTables are the business tables CheckSchema expects.
var RequiredTables = []string{
	"hospitals",
	"route_to_hospital_cache",
}

// entry holds the filename and raw SQL content of a single migration file.
type entry struct {
	version string
	sql     string
}

// Status describes one migration file and whether it has been applied.
type Status struct {
	Version   string
	AppliedAt *time.Time
}

// Run applies all pending migrations to the database in lexicographic order.
func Run(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureMigrationsTable(ctx, pool); err != nil {
		return fmt.Errorf("migrations: ensure tracking table: %w", err)
	}

	entries, err := loadEntries()
	if err != nil {
		return fmt.Errorf("migrations: load files: %w", err)
	}

	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return fmt.Errorf("migrations: read applied versions: %w", err)
	}

	pending := 0
	for _, e := range entries {
		if _, ok := applied[e.version]; ok {
			logger.Debug("migration already applied", "version", e.version)
			continue
		}
		if err := applyEntry(ctx, pool, e); err != nil {
			return fmt.Errorf("migrations: apply %q: %w", e.version, err)
		}
		logger.Info("migration applied", "version", e.version)
		pending++
	}

	if pending == 0 {
		logger.Info("schema is up to date")
	} else {
		logger.Info("migrations applied", "count", pending)
	}

	return nil
}

// List reports every embedded migration with its applied time, if any.
func List(ctx context.Context, pool *pgxpool.Pool) ([]Status, error) {
	if err := ensureMigrationsTable(ctx, pool); err != nil {
		return nil, fmt.Errorf("migrations: ensure tracking table: %w", err)
	}

	entries, err := loadEntries()
	if err != nil {
		return nil, fmt.Errorf("migrations: load files: %w", err)
	}

	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("migrations: read applied versions: %w", err)
	}

	out := make([]Status, len(entries))
	for i, e := range entries {
		out[i] = Status{Version: e.version}
		if at, ok := applied[e.version]; ok {
			out[i].AppliedAt = &at
		}
	}
	return out, nil
}

// CheckSchema verifies that RequiredTables exist in the public schema.
func CheckSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range RequiredTables {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (
                SELECT 1
                FROM information_schema.tables
                WHERE table_schema = 'public'
                  AND table_name   = $1
            )`,
			table,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("migrations: check table %q: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("migrations: required table %q is missing", table)
		}
	}

	return nil
}

func ensureMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    VARCHAR(255) PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`)
	return err
}

// appliedVersions maps each recorded version to its applied time.
func appliedVersions(ctx context.Context, pool *pgxpool.Pool) (map[string]time.Time, error) {
	rows, err := pool.Query(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]time.Time)
	var (
		v  string
		at time.Time
	)
	_, err = pgx.ForEachRow(rows, []any{&v, &at}, func() error {
		seen[v] = at
		return nil
	})
	return seen, err
}

// loadEntries reads the embedded SQL files in lexicographic order, which
// embed.FS.ReadDir guarantees.
func loadEntries() ([]entry, error) {
	dirEntries, err := sqlFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("read embedded dir: %w", err)
	}

	var out []entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		content, err := sqlFiles.ReadFile(de.Name())
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", de.Name(), err)
		}
		out = append(out, entry{version: de.Name(), sql: string(content)})
	}

	return out, nil
}

// applyEntry executes a single migration and records it in schema_migrations
// inside one transaction.
func applyEntry(ctx context.Context, pool *pgxpool.Pool, e entry) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, e.sql); err != nil {
			return fmt.Errorf("exec sql: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`,
			e.version,
		); err != nil {
			return fmt.Errorf("record version: %w", err)
		}
		return nil
	})
}
