// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"physiocms/internal/middleware"
	"physiocms/internal/render"
)

// Admin serves the back-office HTML shell.
type Admin struct {
	renderer *render.Renderer
}

// NewAdmin creates the Admin handler group.
func NewAdmin(renderer *render.Renderer) *Admin {
	return &Admin{renderer: renderer}
}

// LoginPage renders the login form. Signed-in users go to the editor.
func (a *Admin) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()).Authenticated() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "login", &render.PageData{Title: "Anmelden"})
}

// App renders the editor frame for the section in the URL. Without a
// section the page list opens.
func (a *Admin) App(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "section")
	if key == "" {
		key = render.Sections[0].Key
	}
	for _, s := range render.Sections {
		if s.Key == key {
			a.renderer.Page(w, r, "app", &render.PageData{Title: s.Label, Section: s.Key})
			return
		}
	}
	http.NotFound(w, r)
}
