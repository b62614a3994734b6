// Package app wires configuration, storage, the query engine and the HTTP
// engine into a runnable service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/config"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/handler"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/logger"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/metrics"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/middleware"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/routing"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/service"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/storage"
	"github.com/redis/go-redis/v9"
)

// rtreeMinCandidates is the dataset size from which the R-tree ranker
// indexes instead of scanning.
const rtreeMinCandidates = 64

// DBError represents a database-related error.
type DBError struct {
	Op  string
	Err error
}

func (e *DBError) Error() string {
	return fmt.Sprintf("db error during %q: %v", e.Op, e.Err)
}

func (e *DBError) Unwrap() error { return e.Err }

// App holds the application-level dependencies.
type App struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Router *gin.Engine
	logger *slog.Logger
}

// Deps are the collaborators NewRouter wires into the HTTP engine.
type Deps struct {
	Repo   storage.HospitalsRepository
	Router routing.Router
	Ranker query.Ranker
	Logger *slog.Logger

	// RequestTimeout bounds every request; zero disables the deadline.
	RequestTimeout time.Duration

	// Ping reports store health for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// New initializes the application: connects to PostgreSQL, runs migrations,
// wires all domain dependencies, and configures the HTTP engine with routes.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	pool, err := Connect(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	log.Info("database connection pool established")

	if err := storage.RunMigrations(context.Background(), pool, log); err != nil {
		pool.Close()
		return nil, fmt.Errorf("app: run migrations: %w", err)
	}
	log.Info("database schema up to date")

	a := &App{DB: pool, logger: log}

	store, err := a.routeCache(cfg)
	if err != nil {
		a.Shutdown()
		return nil, err
	}
	router := routing.NewCachedRouter(
		routing.NewOSRMRouter(cfg.OSRMURL, log),
		store,
		routing.WithLogger(log),
		routing.WithObserver(metrics.ObserveRouteCache),
	)

	a.Router = NewRouter(Deps{
		Repo:           storage.NewHospitalsRepository(pool),
		Router:         router,
		Ranker:         NewRanker(cfg.SpatialIndex),
		Logger:         log,
		RequestTimeout: cfg.RequestTimeout,
		Ping:           pool.Ping,
	})
	log.Info("application ready",
		"spatial_index", cfg.SpatialIndex,
		"route_cache", cfg.RouteCache,
		"osrm_url", cfg.OSRMURL)
	return a, nil
}

// Connect opens and pings a pgx pool for dsn.
func Connect(dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, &DBError{Op: "parse_dsn", Err: err}
	}

	poolCfg.MaxConns = 20
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, &DBError{Op: "connect", Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &DBError{Op: "ping", Err: err}
	}
	return pool, nil
}

// routeCache builds the CacheStore selected by ROUTE_CACHE.
func (a *App) routeCache(cfg *config.Config) (routing.CacheStore, error) {
	switch cfg.RouteCache {
	case config.RouteCacheRedis:
		a.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("app: redis ping %s: %w", cfg.RedisAddr, err)
		}
		a.logger.Info("redis route cache connected", "addr", cfg.RedisAddr)
		return routing.NewRedisCacheStore(a.Redis), nil
	case config.RouteCacheNone:
		return routing.NewNoopCacheStore(), nil
	default:
		return routing.NewPgCacheStore(a.DB), nil
	}
}

// NewRanker returns the proximity ranker for a SPATIAL_INDEX value.
func NewRanker(kind string) query.Ranker {
	if kind == config.SpatialIndexRTree {
		return query.NewRTreeRanker(rtreeMinCandidates)
	}
	return query.LinearRanker{}
}

// NewRouter builds the gin engine: middleware, /health, /metrics and the
// /api/v1 hospital routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Ranker == nil {
		d.Ranker = query.LinearRanker{}
	}

	repo := &countingRepo{HospitalsRepository: d.Repo}
	engine := query.NewEngine(repo, query.WithRanker(d.Ranker))
	directions := service.NewDirectionsService(d.Router, repo)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(logger.Access(d.Logger))
	router.Use(metrics.Middleware())
	router.Use(gin.Recovery())
	if d.RequestTimeout > 0 {
		router.Use(middleware.Timeout(d.RequestTimeout))
	}

	router.GET("/health", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(c.Request.Context()); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	handler.New(engine, directions, repo).Register(router.Group("/api/v1"))
	return router
}

// Shutdown closes the Redis client and the database pool.
func (a *App) Shutdown() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Warn("redis close failed", "error", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
		a.logger.Info("database connection pool closed")
	}
}

// countingRepo counts failed dataset reads for the metrics endpoint.
type countingRepo struct {
	storage.HospitalsRepository
}

func (r *countingRepo) FetchActive(ctx context.Context) ([]directory.Hospital, error) {
	hs, err := r.HospitalsRepository.FetchActive(ctx)
	if err != nil {
		metrics.DatasetFetchFailuresTotal.Inc()
	}
	return hs, err
}
