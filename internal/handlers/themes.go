// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/models"
	"physiocms/internal/site"
	"physiocms/internal/store"
)

const (
	maxThemeNameLen = 100
	maxSiteNameLen  = 120

	msgThemeNameTaken = "Für diese Marke existiert bereits ein Design mit diesem Namen."
)

// Themes serves theme presets and brand settings.
type Themes struct {
	themes      *store.ThemeStore
	settings    *store.BrandSettingsStore
	invalidator *Invalidator
}

// NewThemes creates the Themes handler group.
func NewThemes(themes *store.ThemeStore, settings *store.BrandSettingsStore, invalidator *Invalidator) *Themes {
	return &Themes{themes: themes, settings: settings, invalidator: invalidator}
}

type themeInput struct {
	Brand  brand.Brand       `json:"brand"`
	Name   string            `json:"name"`
	Tokens map[string]string `json:"tokens"`
}

// validate checks name and tokens. The brand is only checked on create.
func (in *themeInput) validate() (string, string, bool) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return "name", "Der Name ist erforderlich.", false
	}
	if utf8.RuneCountInString(in.Name) > maxThemeNameLen {
		return "name", fmt.Sprintf("Der Name darf höchstens %d Zeichen lang sein.", maxThemeNameLen), false
	}
	if in.Tokens == nil {
		in.Tokens = map[string]string{}
	}
	for k, v := range in.Tokens {
		in.Tokens[k] = strings.TrimSpace(v)
	}
	return "", "", true
}

func (h *Themes) decode(w http.ResponseWriter, r *http.Request) (*themeInput, bool) {
	var in themeInput
	if !decodeJSON(w, r, &in) {
		return nil, false
	}
	if field, msg, ok := in.validate(); !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msg, Field: field})
		return nil, false
	}
	if err := site.ValidateTokens(in.Tokens); err != nil {
		writeValidation(w, err)
		return nil, false
	}
	return &in, true
}

// List returns presets, optionally filtered by ?brand=.
func (h *Themes) List(w http.ResponseWriter, r *http.Request) {
	b, ok := queryBrand(w, r)
	if !ok {
		return
	}
	themes, err := h.themes.List(r.Context(), b)
	if err != nil {
		serverError(w, r, "list themes failed", err)
		return
	}
	writeJSON(w, http.StatusOK, themes)
}

// Create adds an inactive preset to a brand.
func (h *Themes) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	if !in.Brand.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msgInvalidBrand, Field: "brand"})
		return
	}
	theme, err := h.themes.Create(r.Context(), &models.ThemePreset{
		Brand:  in.Brand,
		Name:   in.Name,
		Tokens: in.Tokens,
	})
	if err != nil {
		storeError(w, r, err, msgThemeNameTaken)
		return
	}
	writeJSON(w, http.StatusCreated, theme)
}

// Get returns one preset.
func (h *Themes) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	theme, err := h.themes.FindByID(r.Context(), id)
	if err != nil {
		serverError(w, r, "find theme failed", err)
		return
	}
	if theme == nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

// Update replaces name and tokens. Changing the active preset refreshes
// the brand's pages.
func (h *Themes) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	theme, err := h.themes.Update(r.Context(), id, in.Name, in.Tokens)
	if err != nil {
		storeError(w, r, err, msgThemeNameTaken)
		return
	}
	if theme.IsActive {
		h.invalidator.Brand(r.Context(), theme.Brand, "theme", theme.ID, "update")
	}
	writeJSON(w, http.StatusOK, theme)
}

// Delete removes an inactive preset.
func (h *Themes) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.themes.Delete(r.Context(), id); err != nil {
		storeError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activate makes the preset the single active one of its brand.
func (h *Themes) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	b, err := h.themes.Activate(r.Context(), id)
	if err != nil {
		storeError(w, r, err, "")
		return
	}
	h.invalidator.Brand(r.Context(), b, "theme", id, "activate")

	theme, err := h.themes.FindByID(r.Context(), id)
	if err != nil || theme == nil {
		serverError(w, r, "reload theme failed", err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

// GetSettings returns the settings of the brand in the URL, with the
// brand label as site name when nothing was saved yet.
func (h *Themes) GetSettings(w http.ResponseWriter, r *http.Request) {
	b, ok := urlBrand(w, r)
	if !ok {
		return
	}
	bs, err := h.settings.Get(r.Context(), b)
	if err != nil {
		serverError(w, r, "load brand settings failed", err)
		return
	}
	if bs == nil {
		bs = &models.BrandSettings{Brand: b}
	}
	if bs.SiteName == "" {
		bs.SiteName = b.Label()
	}
	writeJSON(w, http.StatusOK, bs)
}

type settingsInput struct {
	SiteName string `json:"site_name"`
}

// PutSettings sets the site name of a brand.
func (h *Themes) PutSettings(w http.ResponseWriter, r *http.Request) {
	b, ok := urlBrand(w, r)
	if !ok {
		return
	}
	var in settingsInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.SiteName = strings.TrimSpace(in.SiteName)
	if in.SiteName == "" || utf8.RuneCountInString(in.SiteName) > maxSiteNameLen {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error: fmt.Sprintf("Der Seitenname muss 1 bis %d Zeichen lang sein.", maxSiteNameLen),
			Field: "site_name",
		})
		return
	}

	bs, err := h.settings.SetSiteName(r.Context(), b, in.SiteName)
	if err != nil {
		serverError(w, r, "save brand settings failed", err)
		return
	}
	h.invalidator.Brand(r.Context(), b, "settings:"+string(b), uuid.Nil, "update")
	writeJSON(w, http.StatusOK, bs)
}
