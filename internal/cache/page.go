// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page HTML cache. Rendered public
// pages are stored per brand and slug so a hit skips the database and
// block rendering entirely.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"physiocms/internal/brand"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// homeSlug is the slug served at a brand's root URL.
	homeSlug = "home"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Key returns the cache key for a brand's page. An empty slug is the home page.
func Key(b brand.Brand, slug string) string {
	if slug == "" {
		slug = homeSlug
	}
	return pageKeyPrefix + string(b) + ":" + slug
}

// Get retrieves cached HTML for a page. The boolean is false on a miss.
func (pc *PageCache) Get(ctx context.Context, b brand.Brand, slug string) ([]byte, bool) {
	key := Key(b, slug)
	val, err := pc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, b brand.Brand, slug string, html []byte) {
	key := Key(b, slug)
	if err := pc.client.Set(ctx, key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidateBrand removes every cached page of one brand. Navigation,
// footer and theme changes affect all of a brand's pages.
func (pc *PageCache) InvalidateBrand(ctx context.Context, b brand.Brand) {
	pc.deleteMatching(ctx, pageKeyPrefix+string(b)+":*")
}

// InvalidateAll removes all cached pages of every brand.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	pc.deleteMatching(ctx, pageKeyPrefix+"*")
}

// deleteMatching scans for keys matching pattern and deletes them in batches.
func (pc *PageCache) deleteMatching(ctx context.Context, pattern string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache cleared", "pattern", pattern, "deleted", deleted)
	}
}
