package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces route entries in a shared Redis database.
const redisKeyPrefix = "hospital-locator:route:"

type redisCacheStore struct {
	client *redis.Client
}

// NewRedisCacheStore creates a CacheStore backed by Redis. Entries expire
// after cacheTTL through the key TTL.
func NewRedisCacheStore(client *redis.Client) CacheStore {
	return &redisCacheStore{client: client}
}

func redisKey(key CacheKey) string {
	return fmt.Sprintf("%s%s:%d:%s", redisKeyPrefix, key.OriginHash, key.HospitalID, key.Mode)
}

func (s *redisCacheStore) GetCachedRoute(ctx context.Context, key CacheKey) (*RoutingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheQueryTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("routing: redis cache: get: %w", err)
	}

	var resp RoutingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("routing: redis cache: decode: %w", err)
	}
	return &resp, nil
}

func (s *redisCacheStore) SetCachedRoute(ctx context.Context, key CacheKey, resp *RoutingResponse) error {
	ctx, cancel := context.WithTimeout(ctx, cacheQueryTimeout)
	defer cancel()

	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("routing: redis cache: encode: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(key), raw, cacheTTL).Err(); err != nil {
		return fmt.Errorf("routing: redis cache: set: %w", err)
	}
	return nil
}
