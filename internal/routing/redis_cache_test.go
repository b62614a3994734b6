package routing

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisKey(t *testing.T) {
	got := redisKey(CacheKey{OriginHash: "w3gvk1t", HospitalID: 5, Mode: ModeWalking})
	want := "hospital-locator:route:w3gvk1t:5:walking"
	if got != want {
		t.Errorf("redisKey = %q, want %q", got, want)
	}
}

func TestRedisCacheStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisCacheStore(client)
	key := CacheKey{OriginHash: "w3gvk1t", HospitalID: 1, Mode: ModeDriving}

	resp, err := store.GetCachedRoute(context.Background(), key)
	if err == nil {
		t.Fatal("expected error from unreachable redis, got nil")
	}
	if resp != nil {
		t.Errorf("expected nil response on error, got %+v", resp)
	}

	if err := store.SetCachedRoute(context.Background(), key, &RoutingResponse{DistanceM: 1}); err == nil {
		t.Fatal("expected error from unreachable redis on set, got nil")
	}
}

func TestNoopCacheStore(t *testing.T) {
	store := NewNoopCacheStore()
	key := CacheKey{OriginHash: "w3gvk1t", HospitalID: 1, Mode: ModeDriving}

	if err := store.SetCachedRoute(context.Background(), key, &RoutingResponse{Polyline: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := store.GetCachedRoute(context.Background(), key)
	if err != nil || resp != nil {
		t.Errorf("noop store returned (%+v, %v), want (nil, nil)", resp, err)
	}
}
