// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"log/slog"
	"sync"
	"time"

	"physiocms/internal/brand"
)

// chromeTTL bounds how long another instance's admin changes can go
// unseen by this one.
const chromeTTL = time.Minute

type chromeEntry struct {
	chrome *Chrome
	loaded time.Time
}

// chromeCache keeps the per-brand layout data (site name, theme, nav,
// footer) in memory so page renders skip four queries.
type chromeCache struct {
	mu      sync.RWMutex
	entries map[brand.Brand]chromeEntry
	now     func() time.Time
}

func newChromeCache() *chromeCache {
	return &chromeCache{
		entries: make(map[brand.Brand]chromeEntry),
		now:     time.Now,
	}
}

// get returns the cached chrome of b, or nil on a miss or expiry.
func (c *chromeCache) get(b brand.Brand) *Chrome {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[b]
	if !ok || c.now().Sub(e.loaded) > chromeTTL {
		return nil
	}
	return e.chrome
}

func (c *chromeCache) put(b brand.Brand, ch *Chrome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[b] = chromeEntry{chrome: ch, loaded: c.now()}
}

func (c *chromeCache) invalidate(b brand.Brand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, b)
	slog.Debug("site chrome cache invalidated", "brand", b)
}

func (c *chromeCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[brand.Brand]chromeEntry)
}
