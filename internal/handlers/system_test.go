// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"physiocms/internal/store"
)

func TestPurgeCacheIsLogged(t *testing.T) {
	env := newTestEnv(t)
	start := time.Now().Add(-time.Minute)

	w := httptest.NewRecorder()
	env.System.PurgeCache(w, httptest.NewRequest(http.MethodPost, "/api/admin/cache/purge", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("purge: status = %d, want 204", w.Code)
	}

	w = httptest.NewRecorder()
	env.System.CacheLog(w, httptest.NewRequest(http.MethodGet, "/api/admin/cache/log", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("log: status = %d", w.Code)
	}
	entries := decodeBody[[]store.CacheLogEntry](t, w)
	if len(entries) > defaultCacheLogLimit {
		t.Errorf("got %d entries, want at most %d", len(entries), defaultCacheLogLimit)
	}

	found := false
	for _, e := range entries {
		if e.EntityType == "cache" && e.Action == "purge" && e.EntityID == uuid.Nil && e.InvalidatedAt.After(start) {
			found = true
			break
		}
	}
	if !found {
		t.Error("purge not found in cache log")
	}
}

func TestCacheLogLimit(t *testing.T) {
	env := newTestEnv(t)

	// Two entries so the clamp is observable.
	env.System.invalidator.All(t.Context(), "cache", "purge")
	env.System.invalidator.All(t.Context(), "cache", "purge")

	tests := []struct {
		query string
		max   int
	}{
		{"?limit=1", 1},
		{"?limit=0", 1},
		{"?limit=-5", 1},
		{"?limit=abc", defaultCacheLogLimit},
		{"?limit=100000", maxCacheLogLimit},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.System.CacheLog(w, httptest.NewRequest(http.MethodGet, "/api/admin/cache/log"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			entries := decodeBody[[]store.CacheLogEntry](t, w)
			if len(entries) == 0 || len(entries) > tt.max {
				t.Errorf("got %d entries, want 1..%d", len(entries), tt.max)
			}
		})
	}
}
