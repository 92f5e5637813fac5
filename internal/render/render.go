// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render renders the back-office HTML shell: the login page and
// the editor application frame. All editing happens through the JSON
// API; these pages only bootstrap the session and the CSRF token.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"physiocms/internal/brand"
	"physiocms/internal/middleware"
	"physiocms/internal/session"
)

//go:embed templates/admin/*.html
var adminFS embed.FS

// PageData holds all data passed to admin templates.
type PageData struct {
	Title     string        // Page title for <title> tag
	Section   string        // Active navigation section (e.g. "pages", "media")
	Session   *session.Data // Current user session (nil if unauthenticated)
	CSRFToken string        // CSRF token echoed by admin.js
	Data      map[string]any
}

// Section is one entry of the back-office navigation.
type Section struct {
	Key   string
	Label string
}

// Sections lists the back-office areas in navigation order.
var Sections = []Section{
	{"pages", "Seiten"},
	{"media", "Medien"},
	{"themes", "Designs"},
	{"navigation", "Navigation"},
	{"footer", "Footer"},
	{"contact", "Anfragen"},
	{"settings", "Einstellungen"},
}

// IsSection reports whether key names a back-office area.
func IsSection(key string) bool {
	for _, s := range Sections {
		if s.Key == key {
			return true
		}
	}
	return false
}

// standaloneTemplates render as full HTML pages without the base layout.
var standaloneTemplates = map[string]bool{
	"login": true,
}

// Renderer handles template parsing and execution for admin pages.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses the embedded admin templates. Each page template is paired
// with the base layout unless it is standalone.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"sections": func() []Section { return Sections },
		"brands":   func() []brand.Brand { return brand.All },
		"activeClass": func(current, target string) string {
			if current == target {
				return "is-active"
			}
			return ""
		},
	}

	entries, err := adminFS.ReadDir("templates/admin")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		if standaloneTemplates[tmplName] {
			tmpl, err = template.New(name).Funcs(funcs).ParseFS(adminFS, "templates/admin/"+name)
		} else {
			tmpl, err = template.New("base.html").Funcs(funcs).ParseFS(adminFS, "templates/admin/base.html", "templates/admin/"+name)
		}
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}
	return r, nil
}

// Page renders the named admin page. Session and CSRF token are taken
// from the request context when not set.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := tmpl.ExecuteTemplate(w, execName, data); err != nil {
		slog.Error("admin template failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
