package storage

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/migrations"
)

// RunMigrations applies pending migrations, then checks that the tables the
// repositories read from exist.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if err := migrations.Run(ctx, pool, logger); err != nil {
		return err
	}

	return migrations.CheckSchema(ctx, pool)
}
