// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"physiocms/internal/brand"
	"physiocms/internal/cache"
	"physiocms/internal/site"
)

// Public renders the published site of both brands.
type Public struct {
	site  *site.Engine
	cache *cache.PageCache
}

// NewPublic creates the public site handler. pageCache may be nil.
func NewPublic(engine *site.Engine, pageCache *cache.PageCache) *Public {
	return &Public{site: engine, cache: pageCache}
}

// Page serves the published page at the request path. The brand comes
// from the brand middleware; the slug is the path below the brand root.
func (h *Public) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	b := brand.FromContext(ctx)
	slug := strings.Trim(brand.StripPrefix(r.URL.Path), "/")

	if h.cache != nil {
		if html, ok := h.cache.Get(ctx, b, slug); ok {
			writeHTML(w, http.StatusOK, html, "HIT")
			return
		}
	}

	html, err := h.site.RenderPublished(ctx, b, slug)
	if errors.Is(err, site.ErrNotFound) {
		writeHTML(w, http.StatusNotFound, h.site.RenderNotFound(ctx, b), "")
		return
	}
	if err != nil {
		serverError(w, r, "render page failed", err)
		return
	}

	if h.cache != nil {
		h.cache.Set(ctx, b, slug, html)
	}
	writeHTML(w, http.StatusOK, html, "MISS")
}

// NotFound renders the brand's 404 page.
func (h *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusNotFound, h.site.RenderNotFound(r.Context(), brand.FromContext(r.Context())), "")
}

func writeHTML(w http.ResponseWriter, status int, html []byte, cacheState string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if cacheState != "" {
		w.Header().Set("X-Cache", cacheState)
	}
	w.WriteHeader(status)
	w.Write(html)
}
