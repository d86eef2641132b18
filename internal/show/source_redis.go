// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/showcast/internal/platform/constants"
)

// DefaultCacheTTL is how long a cached catalog response stays valid.
const DefaultCacheTTL = time.Hour

// CachedSource is a [Source] decorator that keeps successful catalog
// responses in Redis.
//
// # Semantics
//
//   - Only successes are cached. Not-found, overload and unexpected errors
//     always reach the caller and are retried against the wrapped source.
//   - Redis failures are logged and fall through to the wrapped source.
//   - Identical concurrent misses share one upstream request.
//
// Callers must treat returned values as read-only since concurrent callers may
// receive the same slice.
type CachedSource struct {
	source Source
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewCachedSource wraps source with a Redis cache. A non-positive ttl uses [DefaultCacheTTL].
func NewCachedSource(source Source, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

/*
Shows returns a page of shows, from the cache when possible.

Parameters:
  - ctx: context.Context
  - page: int

Returns:
  - []Show: The page, without cast
  - error: Whatever the wrapped source reports on a miss
*/
func (cache *CachedSource) Shows(ctx context.Context, page int) ([]Show, error) {
	return cached(ctx, cache, constants.RedisPrefixPage+strconv.Itoa(page), func(ctx context.Context) ([]Show, error) {
		return cache.source.Shows(ctx, page)
	})
}

// Show returns one show's details, from the cache when possible.
func (cache *CachedSource) Show(ctx context.Context, id int) (*Show, error) {
	return cached(ctx, cache, constants.RedisPrefixShow+strconv.Itoa(id), func(ctx context.Context) (*Show, error) {
		return cache.source.Show(ctx, id)
	})
}

// CastMembers returns one show's cast in source order, from the cache when possible.
func (cache *CachedSource) CastMembers(ctx context.Context, id int) ([]CastMember, error) {
	return cached(ctx, cache, constants.RedisPrefixCast+strconv.Itoa(id), func(ctx context.Context) ([]CastMember, error) {
		return cache.source.CastMembers(ctx, id)
	})
}

// cached serves key from Redis or collapses concurrent misses into one fetch.
//
// The shared fetch is detached from the caller that started it, so one caller
// giving up never fails the others waiting on the same key. Each caller still
// stops waiting when its own ctx is done.
func cached[T any](ctx context.Context, cache *CachedSource, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var value T
	if cache.load(ctx, key, &value) {
		return value, nil
	}

	detached := context.WithoutCancel(ctx)
	results := cache.group.DoChan(key, func() (any, error) {
		fresh, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		cache.store(detached, key, fresh)
		return fresh, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return zero, result.Err
		}
		if result.Shared {
			cache.logger.Debug("catalog_cache_miss_shared", slog.String("key", key))
		}
		return result.Val.(T), nil
	}
}

// load reports whether key was found and decoded into target.
func (cache *CachedSource) load(ctx context.Context, key string, target any) bool {
	raw, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		cache.logger.Warn("catalog_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		cache.logger.Warn("catalog_cache_entry_corrupt", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return true
}

func (cache *CachedSource) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		cache.logger.Warn("catalog_cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if string(raw) == "null" {
		return
	}

	if err := cache.client.Set(ctx, key, raw, cache.ttl).Err(); err != nil {
		cache.logger.Warn("catalog_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}
