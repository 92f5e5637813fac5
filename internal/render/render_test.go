// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"physiocms/internal/middleware"
	"physiocms/internal/session"
)

// helperSession returns a session.Data suitable for rendering admin templates.
func helperSession() *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "test@physio.local",
		DisplayName: "Test User",
		Role:        "admin",
		TwoFADone:   true,
	}
}

// helperRequest builds a request whose context carries sess and a CSRF
// token set by the real middleware.
func helperRequest(t *testing.T, target string, sess *session.Data) *http.Request {
	t.Helper()
	var captured *http.Request
	h := middleware.NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	if captured == nil {
		t.Fatal("CSRF middleware did not call inner handler")
	}
	ctx := captured.Context()
	if sess != nil {
		ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	}
	return captured.WithContext(ctx)
}

func TestNew(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	for _, name := range []string{"login", "app"} {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("expected template %q to be parsed", name)
		}
	}
	if _, ok := rn.templates["base"]; ok {
		t.Error("base.html should not be registered as a separate template")
	}
}

func TestLoginPage(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	req := helperRequest(t, "/admin/login", nil)
	w := httptest.NewRecorder()
	data := &PageData{Title: "Anmelden"}
	rn.Page(w, req, "login", data)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	token := middleware.CSRFTokenFromCtx(req.Context())
	if token == "" || !strings.Contains(body, token) {
		t.Error("login page should carry the CSRF token")
	}
	if data.CSRFToken != token {
		t.Errorf("PageData.CSRFToken = %q, want %q", data.CSRFToken, token)
	}
	if strings.Contains(body, "admin-nav") {
		t.Error("login page should not use the base layout")
	}
	for _, want := range []string{"<!DOCTYPE html>", `data-step="2fa_verify"`, "/static/admin.js"} {
		if !strings.Contains(body, want) {
			t.Errorf("login page missing %q", want)
		}
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
}

func TestAppPage(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	req := helperRequest(t, "/admin/media", helperSession())
	w := httptest.NewRecorder()
	data := &PageData{Title: "Medien", Section: "media"}
	rn.Page(w, req, "app", data)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if data.Session == nil || data.Session.DisplayName != "Test User" {
		t.Errorf("session not injected from context: %+v", data.Session)
	}

	body := w.Body.String()
	for _, want := range []string{
		"Test User",
		`data-section="media"`,
		`data-brands="physiotherapy,physio-konzept"`,
		`class="is-active" href="/admin/media"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("app page missing %q", want)
		}
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestMissingTemplate(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	w := httptest.NewRecorder()
	rn.Page(w, helperRequest(t, "/admin/x", nil), "nonexistent", &PageData{})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Error("error response should mention template not found")
	}
}

func TestIsSection(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"pages", true},
		{"contact", true},
		{"users", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSection(tt.key); got != tt.want {
			t.Errorf("IsSection(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
