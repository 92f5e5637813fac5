// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site renders the public pages of both brands: the brand's
// layout (theme tokens, navigation, footer) around the page's blocks.
package site

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"physiocms/internal/blocks"
	"physiocms/internal/brand"
	"physiocms/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// HomeSlug is the page served at a brand's root.
const HomeSlug = "home"

// ErrNotFound is returned when no published page matches.
var ErrNotFound = errors.New("site: page not found")

// PageSource finds published pages.
type PageSource interface {
	FindPublished(ctx context.Context, b brand.Brand, slug string) (*models.Page, error)
}

// ThemeSource returns a brand's active theme preset, or nil.
type ThemeSource interface {
	FindActive(ctx context.Context, b brand.Brand) (*models.ThemePreset, error)
}

// SettingsSource returns a brand's settings.
type SettingsSource interface {
	Get(ctx context.Context, b brand.Brand) (*models.BrandSettings, error)
}

// DocSource loads a brand's navigation and footer documents.
type DocSource interface {
	Get(ctx context.Context, b brand.Brand, kind models.DocKind, dst any) (bool, error)
}

// Chrome is the per-brand layout data shared by every page.
type Chrome struct {
	SiteName string
	ThemeCSS template.CSS
	Nav      models.NavConfig
	Footer   models.FooterConfig
}

// Preview marks a render as an editor preview.
type Preview struct {
	PageID    string
	CSRFToken string
}

type layoutData struct {
	Brand           brand.Brand
	HomePath        string
	Chrome          *Chrome
	Title           string
	MetaDescription string
	Content         template.HTML
	Year            int
	Preview         *Preview
	NotFound        bool
}

// Engine renders full HTML documents for public pages and previews.
type Engine struct {
	pages    PageSource
	themes   ThemeSource
	settings SettingsSource
	docs     DocSource
	blocks   *blocks.Renderer
	layout   *template.Template
	chrome   *chromeCache
}

// New creates an Engine and parses the embedded layout templates.
func New(pages PageSource, themes ThemeSource, settings SettingsSource, docs DocSource, renderer *blocks.Renderer) (*Engine, error) {
	layout, err := template.New("site").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse site templates: %w", err)
	}
	return &Engine{
		pages:    pages,
		themes:   themes,
		settings: settings,
		docs:     docs,
		blocks:   renderer,
		layout:   layout,
		chrome:   newChromeCache(),
	}, nil
}

// Blocks returns the block renderer.
func (e *Engine) Blocks() *blocks.Renderer {
	return e.blocks
}

// Invalidate drops the cached layout data of one brand. Called after
// theme, settings, navigation or footer changes.
func (e *Engine) Invalidate(b brand.Brand) {
	e.chrome.invalidate(b)
}

// InvalidateAll drops the cached layout data of every brand.
func (e *Engine) InvalidateAll() {
	e.chrome.invalidateAll()
}

// Chrome returns the layout data of b, loading it on a cache miss.
func (e *Engine) Chrome(ctx context.Context, b brand.Brand) (*Chrome, error) {
	if ch := e.chrome.get(b); ch != nil {
		return ch, nil
	}

	settings, err := e.settings.Get(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("load brand settings: %w", err)
	}
	ch := &Chrome{SiteName: b.Label()}
	if settings != nil && settings.SiteName != "" {
		ch.SiteName = settings.SiteName
	}

	theme, err := e.themes.FindActive(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("load active theme: %w", err)
	}
	if theme != nil {
		ch.ThemeCSS = ThemeCSS(theme.Tokens)
	}

	if _, err := e.docs.Get(ctx, b, models.DocNavigation, &ch.Nav); err != nil {
		return nil, fmt.Errorf("load navigation: %w", err)
	}
	if _, err := e.docs.Get(ctx, b, models.DocFooter, &ch.Footer); err != nil {
		return nil, fmt.Errorf("load footer: %w", err)
	}

	e.chrome.put(b, ch)
	return ch, nil
}

// RenderPublished renders the published page slug of brand b. An empty
// slug is the home page. Returns ErrNotFound for unknown or draft pages.
func (e *Engine) RenderPublished(ctx context.Context, b brand.Brand, slug string) ([]byte, error) {
	if slug == "" {
		slug = HomeSlug
	}
	page, err := e.pages.FindPublished(ctx, b, slug)
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	if page == nil {
		return nil, ErrNotFound
	}
	return e.RenderPage(ctx, b, page, nil)
}

// RenderPage renders page inside the layout of brand b regardless of
// its status. A non-nil preview adds the preview bridge.
func (e *Engine) RenderPage(ctx context.Context, b brand.Brand, page *models.Page, preview *Preview) ([]byte, error) {
	ch, err := e.Chrome(ctx, b)
	if err != nil {
		return nil, err
	}

	content, err := e.blocks.RenderHTML(b, page.Blocks)
	if err != nil {
		return nil, fmt.Errorf("render blocks: %w", err)
	}

	data := layoutData{
		Brand:    b,
		HomePath: brand.PagePath(b, ""),
		Chrome:   ch,
		Title:    page.Title,
		Content:  content,
		Year:     time.Now().Year(),
		Preview:  preview,
	}
	if page.MetaDescription != nil {
		data.MetaDescription = *page.MetaDescription
	}
	return e.execute(data)
}

// RenderNotFound renders the 404 page of brand b. Falls back to a bare
// layout when the brand chrome cannot be loaded.
func (e *Engine) RenderNotFound(ctx context.Context, b brand.Brand) []byte {
	ch, err := e.Chrome(ctx, b)
	if err != nil {
		ch = &Chrome{SiteName: b.Label()}
	}
	out, err := e.execute(layoutData{
		Brand:    b,
		HomePath: brand.PagePath(b, ""),
		Chrome:   ch,
		Title:    "Seite nicht gefunden",
		Year:     time.Now().Year(),
		NotFound: true,
	})
	if err != nil {
		return []byte("<!DOCTYPE html><title>404</title><h1>Seite nicht gefunden</h1>")
	}
	return out
}

func (e *Engine) execute(data layoutData) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.layout.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("execute layout: %w", err)
	}
	return buf.Bytes(), nil
}
