// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"physiocms/internal/brand"
	"physiocms/internal/middleware"
	"physiocms/internal/models"
	"physiocms/internal/preview"
	"physiocms/internal/site"
	"physiocms/internal/store"
	"physiocms/internal/validation"
)

// Preview serves draft pages to editors and re-renders unsaved block
// lists for the preview bridge.
type Preview struct {
	pages *store.PageStore
	site  *site.Engine
}

// NewPreview creates the Preview handler group.
func NewPreview(pages *store.PageStore, engine *site.Engine) *Preview {
	return &Preview{pages: pages, site: engine}
}

// Page renders a page in any status inside its brand layout with the
// preview bridge script. ?brand= overrides the page's own brand.
func (h *Preview) Page(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	page, err := h.pages.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, r, "find preview page failed", err)
		return
	}
	if page == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write(h.site.RenderNotFound(r.Context(), brand.FromContext(r.Context())))
		return
	}

	b := page.Brand
	if q, ok := brand.Parse(r.URL.Query().Get(brand.QueryParam)); ok {
		b = q
	}

	out, err := h.site.RenderPage(r.Context(), b, page, &site.Preview{
		PageID:    page.ID.String(),
		CSRFToken: middleware.CSRFTokenFromCtx(r.Context()),
	})
	if err != nil {
		serverError(w, r, "render preview failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}

// draft is the payload of a preview:update message.
type draft struct {
	Blocks []models.Block `json:"blocks"`
}

type renderedPayload struct {
	HTML string `json:"html"`
}

type errorPayload struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Render accepts a preview:update envelope and answers with preview:ack
// carrying the rendered block HTML, or preview:error when the draft is
// invalid. Malformed envelopes get a plain 400.
func (h *Preview) Render(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	msg, ok := preview.Parse(raw)
	if !ok || msg.Type != preview.TypeUpdate {
		writeError(w, http.StatusBadRequest, "Ungültige Vorschau-Nachricht.")
		return
	}
	b, ok := queryBrand(w, r)
	if !ok {
		return
	}
	if b == "" {
		b = brand.Default
	}

	var d draft
	if err := json.Unmarshal(msg.Payload, &d); err != nil {
		h.reply(w, r, msg, preview.TypeError, errorPayload{Message: msgInvalidJSON})
		return
	}
	if err := validateBlocks(d.Blocks); err != nil {
		p := errorPayload{Message: err.Error()}
		var verr *validation.Error
		if errors.As(err, &verr) {
			p = errorPayload{Message: verr.Message, Field: verr.Field}
		}
		h.reply(w, r, msg, preview.TypeError, p)
		return
	}

	html, err := h.site.Blocks().RenderHTML(b, d.Blocks)
	if err != nil {
		serverError(w, r, "render preview blocks failed", err)
		return
	}
	h.reply(w, r, msg, preview.TypeAck, renderedPayload{HTML: string(html)})
}

func (h *Preview) reply(w http.ResponseWriter, r *http.Request, req *preview.Message, t preview.MessageType, payload any) {
	out, err := preview.Reply(req, t, payload)
	if err != nil {
		serverError(w, r, "build preview reply failed", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
