// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"physiocms/internal/models"
	"physiocms/internal/store"
)

const msgSlugTaken = "Für diese Marke existiert bereits eine Seite mit diesem Slug."

// Pages serves the page and block CRUD API under /api/admin/pages.
type Pages struct {
	pages       *store.PageStore
	invalidator *Invalidator
}

// NewPages creates the Pages handler group.
func NewPages(pages *store.PageStore, invalidator *Invalidator) *Pages {
	return &Pages{pages: pages, invalidator: invalidator}
}

// List returns all pages without blocks, optionally filtered by ?brand=.
func (h *Pages) List(w http.ResponseWriter, r *http.Request) {
	b, ok := queryBrand(w, r)
	if !ok {
		return
	}
	pages, err := h.pages.List(r.Context(), b)
	if err != nil {
		serverError(w, r, "list pages failed", err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

// Create inserts a new page. The slug is derived from the title when empty.
func (h *Pages) Create(w http.ResponseWriter, r *http.Request) {
	var in pageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := validatePage(&in); err != nil {
		writeValidation(w, err)
		return
	}

	page, err := h.pages.Create(r.Context(), &models.Page{
		Title:           in.Title,
		Slug:            in.Slug,
		Brand:           in.Brand,
		Status:          in.Status,
		MetaDescription: in.MetaDescription,
		Blocks:          in.Blocks,
	})
	if err != nil {
		storeError(w, r, err, msgSlugTaken)
		return
	}

	h.invalidator.Brand(r.Context(), page.Brand, "page", page.ID, "create")
	writeJSON(w, http.StatusCreated, page)
}

// Get returns one page with its blocks ordered by sort.
func (h *Pages) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	page, err := h.pages.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, r, "find page failed", err)
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Replace overwrites the page and its full block list.
func (h *Pages) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in pageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.normalize()
	if err := validatePage(&in); err != nil {
		writeValidation(w, err)
		return
	}

	ctx := r.Context()
	before, err := h.pages.FindByID(ctx, id)
	if err != nil {
		serverError(w, r, "find page failed", err)
		return
	}
	if before == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	page, err := h.pages.Replace(ctx, &models.Page{
		ID:              id,
		Title:           in.Title,
		Slug:            in.Slug,
		Brand:           in.Brand,
		Status:          in.Status,
		MetaDescription: in.MetaDescription,
		Blocks:          in.Blocks,
	}, editorID(r))
	if err != nil {
		storeError(w, r, err, msgSlugTaken)
		return
	}

	if before.Brand != page.Brand {
		h.invalidator.Brand(ctx, before.Brand, "page", page.ID, "move")
	}
	h.invalidator.Brand(ctx, page.Brand, "page", page.ID, "update")
	writeJSON(w, http.StatusOK, page)
}

type statusInput struct {
	Status models.PageStatus `json:"status"`
}

// SetStatus publishes or unpublishes a page.
func (h *Pages) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in statusInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if !in.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Ungültiger Status.")
		return
	}

	page, err := h.pages.SetStatus(r.Context(), id, in.Status)
	if err != nil {
		storeError(w, r, err, "")
		return
	}
	h.invalidator.Brand(r.Context(), page.Brand, "page", page.ID, string(in.Status))
	writeJSON(w, http.StatusOK, page)
}

// Delete removes a page and its blocks.
func (h *Pages) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	ctx := r.Context()
	page, err := h.pages.FindByID(ctx, id)
	if err != nil {
		serverError(w, r, "find page failed", err)
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.pages.Delete(ctx, id); err != nil {
		storeError(w, r, err, "")
		return
	}
	h.invalidator.Brand(ctx, page.Brand, "page", id, "delete")
	w.WriteHeader(http.StatusNoContent)
}

// Revisions lists the saved snapshots of a page, newest first.
func (h *Pages) Revisions(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	revs, err := h.pages.Revisions(r.Context(), id)
	if err != nil {
		serverError(w, r, "list revisions failed", err)
		return
	}
	writeJSON(w, http.StatusOK, revs)
}

// Restore replaces the page with a revision snapshot. The current state
// becomes a new revision first.
func (h *Pages) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	revID, ok := urlID(w, r, "revID")
	if !ok {
		return
	}

	ctx := r.Context()
	before, err := h.pages.FindByID(ctx, id)
	if err != nil {
		serverError(w, r, "find page failed", err)
		return
	}
	if before == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	page, err := h.pages.Restore(ctx, id, revID, editorID(r))
	if err != nil {
		storeError(w, r, err, msgSlugTaken)
		return
	}
	if before.Brand != page.Brand {
		h.invalidator.Brand(ctx, before.Brand, "page", id, "move")
	}
	h.invalidator.Brand(ctx, page.Brand, "page", id, "restore")
	writeJSON(w, http.StatusOK, page)
}
