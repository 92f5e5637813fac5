// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/models"
	"physiocms/internal/store"
	"physiocms/internal/validation"
)

// SiteDocs serves the per-brand navigation and footer documents.
type SiteDocs struct {
	docs        *store.SiteDocStore
	invalidator *Invalidator
}

// NewSiteDocs creates the SiteDocs handler group.
func NewSiteDocs(docs *store.SiteDocStore, invalidator *Invalidator) *SiteDocs {
	return &SiteDocs{docs: docs, invalidator: invalidator}
}

// newDoc returns an empty document of kind. Slices are non-nil so the
// JSON never carries null lists.
func newDoc(kind models.DocKind) any {
	switch kind {
	case models.DocNavigation:
		return &models.NavConfig{Items: []models.NavItem{}}
	default:
		return &models.FooterConfig{Columns: []models.FooterColumn{}}
	}
}

func (h *SiteDocs) load(w http.ResponseWriter, r *http.Request, b brand.Brand, kind models.DocKind) {
	doc := newDoc(kind)
	if _, err := h.docs.Get(r.Context(), b, kind, doc); err != nil {
		serverError(w, r, "load site document failed", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Get returns the document of the brand in the URL. Missing documents
// are returned empty.
func (h *SiteDocs) Get(kind models.DocKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := urlBrand(w, r)
		if !ok {
			return
		}
		h.load(w, r, b, kind)
	}
}

// Put validates and stores the document of the brand in the URL.
func (h *SiteDocs) Put(kind models.DocKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := urlBrand(w, r)
		if !ok {
			return
		}
		doc := newDoc(kind)
		if !decodeJSON(w, r, doc) {
			return
		}
		if err := validation.Struct(doc); err != nil {
			writeValidation(w, err)
			return
		}
		if err := h.docs.Put(r.Context(), b, kind, doc); err != nil {
			serverError(w, r, "save site document failed", err)
			return
		}
		h.invalidator.Brand(r.Context(), b, string(kind)+":"+string(b), uuid.Nil, "update")
		writeJSON(w, http.StatusOK, doc)
	}
}

// Public returns a document for the site itself. ?brand= picks the
// brand; without it the brand resolved from the request applies.
func (h *SiteDocs) Public(kind models.DocKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := queryBrand(w, r)
		if !ok {
			return
		}
		if b == "" {
			b = brand.FromContext(r.Context())
		}
		w.Header().Set("Cache-Control", "public, max-age=60")
		h.load(w, r, b, kind)
	}
}
