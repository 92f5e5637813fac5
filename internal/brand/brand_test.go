// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brand

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		query string
		want  Brand
	}{
		{"root", "/", "", Physiotherapy},
		{"practice page", "/team", "", Physiotherapy},
		{"konzept root", "/konzept", "", Konzept},
		{"konzept trailing slash", "/konzept/", "", Konzept},
		{"konzept page", "/konzept/leistungen", "", Konzept},
		{"konzept nested", "/konzept/a/b", "", Konzept},
		{"similar prefix", "/konzepte", "", Physiotherapy},
		{"query ignored outside preview", "/team", "brand=physio-konzept", Physiotherapy},
		{"query ignored on konzept", "/konzept/team", "brand=physiotherapy", Konzept},
		{"preview with konzept query", "/preview/123", "brand=physio-konzept", Konzept},
		{"preview root with query", "/preview", "brand=physio-konzept", Konzept},
		{"preview with practice query", "/preview/123", "brand=physiotherapy", Physiotherapy},
		{"preview invalid query", "/preview/123", "brand=acme", Physiotherapy},
		{"preview without query", "/preview/123", "", Physiotherapy},
		{"api path", "/api/contact", "brand=physio-konzept", Physiotherapy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if got := Resolve(tt.path, q); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.path, tt.query, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if b, ok := Parse("physio-konzept"); !ok || b != Konzept {
		t.Errorf("Parse(physio-konzept) = %q, %v", b, ok)
	}
	if b, ok := Parse(" physiotherapy "); !ok || b != Physiotherapy {
		t.Errorf("Parse with spaces = %q, %v", b, ok)
	}
	for _, s := range []string{"", "konzept", "PHYSIOTHERAPY"} {
		if _, ok := Parse(s); ok {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestStripPrefixAndPagePath(t *testing.T) {
	tests := []struct {
		path string
		slug string
	}{
		{"/", ""},
		{"/team", "team"},
		{"/konzept", ""},
		{"/konzept/", ""},
		{"/konzept/team/", "team"},
		{"/leistungen/rueckenschmerz", "leistungen/rueckenschmerz"},
	}
	for _, tt := range tests {
		if got := StripPrefix(tt.path); got != tt.slug {
			t.Errorf("StripPrefix(%q) = %q, want %q", tt.path, got, tt.slug)
		}
	}

	if got := PagePath(Konzept, "home"); got != "/konzept" {
		t.Errorf("PagePath(konzept, home) = %q", got)
	}
	if got := PagePath(Physiotherapy, ""); got != "/" {
		t.Errorf("PagePath(practice, \"\") = %q", got)
	}
	if got := PagePath(Konzept, "team"); got != "/konzept/team" {
		t.Errorf("PagePath(konzept, team) = %q", got)
	}
}

func TestMiddleware(t *testing.T) {
	var seen Brand
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/konzept/about", nil))

	if seen != Konzept {
		t.Errorf("context brand = %q, want %q", seen, Konzept)
	}
	if got := rec.Header().Get(HeaderName); got != string(Konzept) {
		t.Errorf("%s header = %q", HeaderName, got)
	}
}

func TestFromContextDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := FromContext(req.Context()); got != Default {
		t.Errorf("FromContext without value = %q, want %q", got, Default)
	}
}
