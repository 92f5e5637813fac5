// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for PhysioCMS. Handlers are
// grouped by concern (auth, pages, media, themes, site documents,
// contact, consent, public site) and receive their dependencies through
// the handler struct. The admin API speaks JSON; errors are returned as
// {"error": "<German message>"}.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/middleware"
	"physiocms/internal/store"
	"physiocms/internal/validation"
)

// maxJSONBody caps JSON request bodies. Page saves carry up to 200 blocks
// of at most 64 KiB props each, so the limit is generous.
const maxJSONBody = 8 << 20

// German messages shared by several handlers.
const (
	msgInvalidJSON   = "Ungültige JSON-Daten."
	msgInvalidID     = "Ungültige ID."
	msgInvalidBrand  = "Unbekannte Marke."
	msgNotFound      = "Nicht gefunden."
	msgInternalError = "Interner Serverfehler."
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode json response", "error", err)
	}
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeValidation writes a 400 for a validation failure. Non-validation
// errors are reported with their message.
func writeValidation(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Message, Field: verr.Field})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// serverError logs err and writes a generic 500.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "method", r.Method, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, msgInternalError)
}

// storeError maps store sentinel errors to responses. conflict is the
// message used for ErrConflict.
func storeError(w http.ResponseWriter, r *http.Request, err error, conflict string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, conflict)
	case errors.Is(err, store.ErrFolderNotEmpty):
		writeError(w, http.StatusConflict, "Der Ordner ist nicht leer.")
	case errors.Is(err, store.ErrFolderCycle):
		writeError(w, http.StatusBadRequest, "Ein Ordner kann nicht in sich selbst verschoben werden.")
	case errors.Is(err, store.ErrActivePreset):
		writeError(w, http.StatusConflict, "Das aktive Design kann nicht gelöscht werden.")
	default:
		serverError(w, r, "store operation failed", err)
	}
}

// decodeJSON reads a JSON body into dst. It writes the 400 itself and
// returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Erwartet application/json.")
		return false
	}
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Anfrage ist zu groß.")
			return false
		}
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	if _, err := dec.Token(); err != io.EOF {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

// urlID parses the chi URL parameter name as a UUID, writing a 400 when
// it is malformed.
func urlID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// urlBrand parses the chi URL parameter "brand".
func urlBrand(w http.ResponseWriter, r *http.Request) (brand.Brand, bool) {
	b, ok := brand.Parse(chi.URLParam(r, "brand"))
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBrand)
		return "", false
	}
	return b, true
}

// queryBrand parses an optional ?brand= filter. Empty means all brands.
func queryBrand(w http.ResponseWriter, r *http.Request) (brand.Brand, bool) {
	raw := r.URL.Query().Get("brand")
	if raw == "" {
		return "", true
	}
	b, ok := brand.Parse(raw)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidBrand)
		return "", false
	}
	return b, true
}

// editorID returns the signed-in user's ID, or nil.
func editorID(r *http.Request) *uuid.UUID {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || sess.UserID == uuid.Nil {
		return nil
	}
	id := sess.UserID
	return &id
}
