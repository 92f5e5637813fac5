// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for
// PhysioCMS. Routes are split into the public site, the public JSON
// endpoints, the auth API, the admin API and the admin shell.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"physiocms/internal/brand"
	"physiocms/internal/handlers"
	"physiocms/internal/middleware"
	"physiocms/internal/models"
	"physiocms/internal/ratelimit"
	"physiocms/internal/session"
	"physiocms/web"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Sessions      *session.Store
	SecureCookies bool
	LoginLimiter  ratelimit.Limiter

	Admin    *handlers.Admin
	Auth     *handlers.Auth
	Pages    *handlers.Pages
	Preview  *handlers.Preview
	Media    *handlers.Media
	Themes   *handlers.Themes
	SiteDocs *handlers.SiteDocs
	Contact  *handlers.Contact
	Consent  *handlers.Consent
	Public   *handlers.Public
	System   *handlers.System
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware. The brand must be resolved before the logger runs.
	r.Use(middleware.Recoverer)
	r.Use(brand.Middleware)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	csrf := middleware.NewCSRF(d.SecureCookies)
	loadSession := middleware.LoadSession(d.Sessions)

	r.Get("/health", healthHandler)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Route("/api", func(r chi.Router) {
		r.NotFound(apiNotFound)

		// Public JSON endpoints. No session, no CSRF.
		r.Post("/contact", d.Contact.Submit)
		r.Get("/consent", d.Consent.Get)
		r.Post("/consent", d.Consent.Post)
		r.Get("/navigation", d.SiteDocs.Public(models.DocNavigation))
		r.Get("/footer", d.SiteDocs.Public(models.DocFooter))

		r.Route("/auth", func(r chi.Router) {
			r.Use(loadSession)
			r.Use(middleware.NoStore)
			r.Use(csrf)

			r.With(middleware.RateLimit(d.LoginLimiter, "login")).Post("/login", d.Auth.Login)
			r.Post("/logout", d.Auth.Logout)

			// Password checked, second factor may still be pending.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAPISession)
				r.Get("/session", d.Auth.Session)
				r.Post("/2fa/setup", d.Auth.TwoFASetup)
				r.With(middleware.RateLimit(d.LoginLimiter, "2fa")).Post("/2fa/verify", d.Auth.TwoFAVerify)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(loadSession)
			r.Use(middleware.RequireAPIAuth)
			r.Use(middleware.NoStore)
			r.Use(csrf)

			r.Route("/pages", func(r chi.Router) {
				r.Get("/", d.Pages.List)
				r.Post("/", d.Pages.Create)
				r.Get("/{id}", d.Pages.Get)
				r.Put("/{id}", d.Pages.Replace)
				r.Delete("/{id}", d.Pages.Delete)
				r.Patch("/{id}/status", d.Pages.SetStatus)
				r.Get("/{id}/revisions", d.Pages.Revisions)
				r.Post("/{id}/revisions/{revID}/restore", d.Pages.Restore)
			})

			r.Post("/preview/render", d.Preview.Render)

			r.Route("/media", func(r chi.Router) {
				r.Get("/folders", d.Media.ListFolders)
				r.Post("/folders", d.Media.CreateFolder)
				r.Patch("/folders/{id}", d.Media.UpdateFolder)
				r.Delete("/folders/{id}", d.Media.DeleteFolder)

				r.Get("/", d.Media.List)
				r.Post("/", d.Media.Upload)
				r.Patch("/{id}", d.Media.Update)
				r.Delete("/{id}", d.Media.Delete)
			})

			r.Route("/themes", func(r chi.Router) {
				r.Get("/", d.Themes.List)
				r.Post("/", d.Themes.Create)
				r.Get("/{id}", d.Themes.Get)
				r.Put("/{id}", d.Themes.Update)
				r.Delete("/{id}", d.Themes.Delete)
				r.Post("/{id}/activate", d.Themes.Activate)
			})

			r.Get("/settings/{brand}", d.Themes.GetSettings)
			r.Put("/settings/{brand}", d.Themes.PutSettings)

			r.Get("/navigation/{brand}", d.SiteDocs.Get(models.DocNavigation))
			r.Put("/navigation/{brand}", d.SiteDocs.Put(models.DocNavigation))
			r.Get("/footer/{brand}", d.SiteDocs.Get(models.DocFooter))
			r.Put("/footer/{brand}", d.SiteDocs.Put(models.DocFooter))

			r.Route("/contact", func(r chi.Router) {
				r.Get("/", d.Contact.List)
				r.Patch("/{id}", d.Contact.SetStatus)
				r.Delete("/{id}", d.Contact.Delete)
			})

			r.Get("/blocks/palette", d.System.Palette)
			r.Get("/cache/log", d.System.CacheLog)
			r.With(middleware.RequireAdmin).Post("/cache/purge", d.System.PurgeCache)
		})
	})

	// Admin shell. Data flows through /api/admin.
	r.Route("/admin", func(r chi.Router) {
		r.Use(loadSession)
		r.Use(csrf)

		r.Get("/login", d.Admin.LoginPage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", d.Admin.App)
			r.Get("/{section}", d.Admin.App)
		})
	})

	r.With(loadSession, middleware.RequireAuth, middleware.NoStore, csrf).
		Get("/preview/{id}", d.Preview.Page)

	// Public site. Everything else resolves to a page slug.
	r.Get("/", d.Public.Page)
	r.Get("/*", d.Public.Page)
	r.NotFound(d.Public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Nicht gefunden."}`))
}
