package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/app"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/logger"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/migrations"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/seed"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/storage"
	"github.com/spf13/cobra"
)

// commandTimeout bounds a whole migrate or seed run.
const commandTimeout = 2 * time.Minute

// globalFlags are shared by every subcommand.
type globalFlags struct {
	dsn      string
	logLevel string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "hospitalctl",
		Short:         "Manage the hospital directory database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.dsn, "dsn", os.Getenv("DB_DSN"), "PostgreSQL connection string (default $DB_DSN)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newMigrateCmd(g), newSeedCmd(g))
	return root
}

func newMigrateCmd(g *globalFlags) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Applies every embedded SQL migration that has not run yet, then checks
that the required tables exist. With --status, lists the applied versions
instead and changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPool(cmd.Context(), g, func(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
				if status {
					return printStatus(ctx, cmd, pool)
				}
				return storage.RunMigrations(ctx, pool, log)
			})
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "list applied migrations and exit")
	return cmd
}

func printStatus(ctx context.Context, cmd *cobra.Command, pool *pgxpool.Pool) error {
	applied, err := migrations.List(ctx, pool)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(applied) == 0 {
		fmt.Fprintln(out, "no migrations applied")
		return nil
	}
	for _, s := range applied {
		at := "-"
		if s.AppliedAt != nil {
			at = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(out, "%-32s %s\n", s.Version, at)
	}
	return nil
}

func newSeedCmd(g *globalFlags) *cobra.Command {
	var (
		file  string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load hospitals into the directory",
		Long: `Loads hospital records from a YAML file, or the built-in Ho Chi Minh City
sample when --file is omitted. Every record is validated before anything is
written. With --reset the hospitals table is emptied first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hs, err := loadSeed(file)
			if err != nil {
				return err
			}
			return withPool(cmd.Context(), g, func(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
				if err := storage.RunMigrations(ctx, pool, log); err != nil {
					return err
				}
				n, err := storage.NewHospitalsRepository(pool).InsertHospitals(ctx, hs, reset)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted %d hospitals\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a top-level hospitals list")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing hospitals first")
	return cmd
}

func loadSeed(file string) ([]directory.Hospital, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.Load(file)
}

// withPool connects to g.dsn, runs fn under commandTimeout and closes the pool.
func withPool(ctx context.Context, g *globalFlags, fn func(context.Context, *pgxpool.Pool, *slog.Logger) error) error {
	if g.dsn == "" {
		return errors.New("no database: set DB_DSN or pass --dsn")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.New(os.Stderr, g.logLevel, "text")

	pool, err := app.Connect(g.dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	return fn(ctx, pool, log)
}
