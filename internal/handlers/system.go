// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"physiocms/internal/blocks"
	"physiocms/internal/store"
)

const (
	defaultCacheLogLimit = 50
	maxCacheLogLimit     = 500
)

// System serves editor metadata and cache maintenance endpoints.
type System struct {
	cacheLog    *store.CacheLogStore
	invalidator *Invalidator
}

// NewSystem creates the System handler group.
func NewSystem(cacheLog *store.CacheLogStore, invalidator *Invalidator) *System {
	return &System{cacheLog: cacheLog, invalidator: invalidator}
}

// Palette lists the block types an editor can insert, with defaults.
func (h *System) Palette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, blocks.Palette())
}

// CacheLog returns the latest cache invalidations. ?limit= caps the list.
func (h *System) CacheLog(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r.URL.Query().Get("limit"), defaultCacheLogLimit)
	limit = min(max(limit, 1), maxCacheLogLimit)

	entries, err := h.cacheLog.RecentEntries(r.Context(), limit)
	if err != nil {
		serverError(w, r, "load cache log failed", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// PurgeCache drops every cached page of every brand.
func (h *System) PurgeCache(w http.ResponseWriter, r *http.Request) {
	h.invalidator.All(r.Context(), "cache", "purge")
	w.WriteHeader(http.StatusNoContent)
}
