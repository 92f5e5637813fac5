// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/cache"
	"physiocms/internal/site"
	"physiocms/internal/store"
)

// Invalidator drops cached output after content changes: the Valkey page
// cache, the site engine's in-memory layout data and an audit entry.
// Any dependency may be nil.
type Invalidator struct {
	pages    *cache.PageCache
	cacheLog *store.CacheLogStore
	site     *site.Engine
}

// NewInvalidator creates an Invalidator.
func NewInvalidator(pages *cache.PageCache, cacheLog *store.CacheLogStore, engine *site.Engine) *Invalidator {
	return &Invalidator{pages: pages, cacheLog: cacheLog, site: engine}
}

// Brand invalidates every cached page of b and records the cause.
func (iv *Invalidator) Brand(ctx context.Context, b brand.Brand, entityType string, entityID uuid.UUID, action string) {
	if iv == nil {
		return
	}
	if iv.pages != nil {
		iv.pages.InvalidateBrand(ctx, b)
	}
	if iv.site != nil {
		iv.site.Invalidate(b)
	}
	if iv.cacheLog != nil {
		iv.cacheLog.Log(ctx, entityType, entityID, action)
	}
}

// All invalidates the cached pages of every brand.
func (iv *Invalidator) All(ctx context.Context, entityType string, action string) {
	if iv == nil {
		return
	}
	if iv.pages != nil {
		iv.pages.InvalidateAll(ctx)
	}
	if iv.site != nil {
		iv.site.InvalidateAll()
	}
	if iv.cacheLog != nil {
		iv.cacheLog.Log(ctx, entityType, uuid.Nil, action)
	}
}
