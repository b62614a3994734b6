package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mmcloughlin/geohash"
)

const (
	// cacheTTL is how long a cached route entry remains valid.
	cacheTTL = 10 * time.Minute

	// cacheQueryTimeout is the deadline for each cache read/write.
	cacheQueryTimeout = 5 * time.Second

	// geohashPrecision 7 is a cell of roughly 150m x 150m, small enough that
	// every origin in a cell shares a sensible route to a hospital.
	geohashPrecision = 7

	// noHospitalID is the cache-key component used when the context carries
	// no hospital ID. Hospital IDs start at 1.
	noHospitalID int64 = 0
)

// CacheKey identifies a cached route.
type CacheKey struct {
	OriginHash string
	HospitalID int64
	Mode       Mode
}

// CacheStore abstracts the persistence layer for route caching.
type CacheStore interface {
	// GetCachedRoute returns the cached response for key, or (nil, nil) when
	// there is no valid entry.
	GetCachedRoute(ctx context.Context, key CacheKey) (*RoutingResponse, error)

	// SetCachedRoute stores resp under key with an expiry of now + cacheTTL.
	SetCachedRoute(ctx context.Context, key CacheKey, resp *RoutingResponse) error
}

// CachedRouter wraps another Router and caches its routed (non-fallback)
// results.
type CachedRouter struct {
	inner      Router
	store      CacheStore
	logger     *slog.Logger
	observe    func(hit bool)
	afterStore func() // test hook, called after every async store attempt
}

// CachedRouterOption configures a CachedRouter.
type CachedRouterOption func(*CachedRouter)

// WithLogger sets the logger used to report cache failures.
func WithLogger(l *slog.Logger) CachedRouterOption {
	return func(r *CachedRouter) { r.logger = l }
}

// WithObserver registers fn to be called with the outcome of every cache
// lookup.
func WithObserver(fn func(hit bool)) CachedRouterOption {
	return func(r *CachedRouter) { r.observe = fn }
}

func withAfterStore(fn func()) CachedRouterOption {
	return func(r *CachedRouter) { r.afterStore = fn }
}

// NewCachedRouter wraps inner with a cache-aside layer backed by store.
func NewCachedRouter(inner Router, store CacheStore, opts ...CachedRouterOption) *CachedRouter {
	r := &CachedRouter{inner: inner, store: store}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Route satisfies the Router interface. It checks the cache first; on a miss
// it delegates to the inner Router and persists routed results asynchronously.
func (r *CachedRouter) Route(ctx context.Context, req RoutingRequest) (*RoutingResponse, error) {
	key := CacheKey{
		OriginHash: originHash(req.Origin.Lat, req.Origin.Lng),
		HospitalID: noHospitalID,
		Mode:       req.Mode,
	}
	if key.Mode == "" {
		key.Mode = ModeDriving
	}
	if id, ok := HospitalIDFromContext(ctx); ok {
		key.HospitalID = id
	}

	cached, err := r.store.GetCachedRoute(ctx, key)
	if err != nil {
		r.logf("route cache read failed", key, err)
	}
	r.record(cached != nil)
	if cached != nil {
		return cached, nil
	}

	resp, err := r.inner.Route(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.IsFallback {
		return resp, nil
	}

	// The caller's context may end as soon as we return.
	go func() {
		storeCtx, cancel := context.WithTimeout(context.Background(), cacheQueryTimeout)
		defer cancel()

		if err := r.store.SetCachedRoute(storeCtx, key, resp); err != nil {
			r.logf("route cache write failed", key, err)
		}

		if r.afterStore != nil {
			r.afterStore()
		}
	}()

	return resp, nil
}

func (r *CachedRouter) record(hit bool) {
	if r.observe != nil {
		r.observe(hit)
	}
}

func (r *CachedRouter) logf(msg string, key CacheKey, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(msg,
		"origin", key.OriginHash,
		"hospital_id", key.HospitalID,
		"mode", key.Mode,
		"error", err)
}

// originHash returns the geohash cell of the origin.
func originHash(lat, lon float64) string {
	return geohash.EncodeWithPrecision(lat, lon, geohashPrecision)
}

// --- pgx-backed CacheStore implementation ---

type pgCacheStore struct {
	pool *pgxpool.Pool
}

// NewPgCacheStore creates a CacheStore backed by route_to_hospital_cache.
func NewPgCacheStore(pool *pgxpool.Pool) CacheStore {
	return &pgCacheStore{pool: pool}
}

func (s *pgCacheStore) GetCachedRoute(ctx context.Context, key CacheKey) (*RoutingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheQueryTimeout)
	defer cancel()

	const q = `
		SELECT polyline, distance_m, duration_s
		FROM route_to_hospital_cache
		WHERE origin_hash = $1
		  AND hospital_id = $2
		  AND mode        = $3
		  AND expires_at  > NOW()`

	var (
		polyline  string
		distanceM int32
		durationS int32
	)

	err := s.pool.QueryRow(ctx, q, key.OriginHash, key.HospitalID, string(key.Mode)).
		Scan(&polyline, &distanceM, &durationS)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("routing: cache: get: %w", err)
	}

	return &RoutingResponse{
		Polyline:  polyline,
		DistanceM: int(distanceM),
		DurationS: int(durationS),
	}, nil
}

// SetCachedRoute upserts an entry. The expiry is computed from cacheTTL here
// so the SQL never encodes the TTL.
func (s *pgCacheStore) SetCachedRoute(ctx context.Context, key CacheKey, resp *RoutingResponse) error {
	ctx, cancel := context.WithTimeout(ctx, cacheQueryTimeout)
	defer cancel()

	const q = `
		INSERT INTO route_to_hospital_cache
			(origin_hash, hospital_id, mode, polyline, distance_m, duration_s, calc_ts, expires_at)
		VALUES
			($1, $2, $3, $4, $5, $6, NOW(), $7)
		ON CONFLICT (origin_hash, hospital_id, mode)
		DO UPDATE SET
			polyline   = EXCLUDED.polyline,
			distance_m = EXCLUDED.distance_m,
			duration_s = EXCLUDED.duration_s,
			calc_ts    = EXCLUDED.calc_ts,
			expires_at = EXCLUDED.expires_at`

	_, err := s.pool.Exec(ctx, q,
		key.OriginHash,
		key.HospitalID,
		string(key.Mode),
		resp.Polyline,
		int32(resp.DistanceM),
		int32(resp.DurationS),
		time.Now().Add(cacheTTL),
	)
	if err != nil {
		return fmt.Errorf("routing: cache: set: %w", err)
	}
	return nil
}

// noopCacheStore never hits and discards writes.
type noopCacheStore struct{}

// NewNoopCacheStore returns a CacheStore that caches nothing.
func NewNoopCacheStore() CacheStore { return noopCacheStore{} }

func (noopCacheStore) GetCachedRoute(context.Context, CacheKey) (*RoutingResponse, error) {
	return nil, nil
}

func (noopCacheStore) SetCachedRoute(context.Context, CacheKey, *RoutingResponse) error {
	return nil
}

// --- Context helpers for passing the hospital ID through the routing chain ---

type contextKey int

const hospitalIDKey contextKey = iota

// WithHospitalID returns a context carrying the destination hospital ID,
// which CachedRouter adds to its cache key.
func WithHospitalID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, hospitalIDKey, id)
}

// HospitalIDFromContext extracts the ID stored by WithHospitalID.
func HospitalIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(hospitalIDKey).(int64)
	return v, ok
}
