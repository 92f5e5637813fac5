// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package brand resolves which of the two site identities a request
// belongs to. The practice site lives at the root; the sports-performance
// sub-brand lives under /konzept. Both share one database and one set of
// handlers, so every brand-scoped query takes the resolved Brand.
package brand

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Brand identifies a site identity.
type Brand string

const (
	Physiotherapy Brand = "physiotherapy"
	Konzept       Brand = "physio-konzept"

	// Default is used for every path outside the Konzept prefix.
	Default = Physiotherapy

	// konzeptPrefix is the URL prefix owned by the Konzept brand.
	konzeptPrefix = "/konzept"

	// previewPrefix is the editor preview route. It is the only place a
	// brand query parameter may override path-based resolution.
	previewPrefix = "/preview"

	// QueryParam is the query parameter honoured on preview routes.
	QueryParam = "brand"

	// HeaderName is set on every response so the front end and proxies
	// can see which brand served the request.
	HeaderName = "X-Brand"
)

// All lists every known brand in display order.
var All = []Brand{Physiotherapy, Konzept}

// Valid reports whether b is a known brand.
func (b Brand) Valid() bool {
	return b == Physiotherapy || b == Konzept
}

// String implements fmt.Stringer.
func (b Brand) String() string {
	return string(b)
}

// Label returns the human-readable site name used as a fallback title.
func (b Brand) Label() string {
	if b == Konzept {
		return "Physio Konzept"
	}
	return "Physiotherapie"
}

// Parse validates a brand string. The boolean is false for unknown values.
func Parse(s string) (Brand, bool) {
	b := Brand(strings.TrimSpace(s))
	if !b.Valid() {
		return "", false
	}
	return b, true
}

// Resolve maps a request path (and its query) to a brand.
//
// /konzept and /konzept/* belong to the Konzept brand, everything else to
// the practice brand. On /preview routes an explicit, valid brand query
// parameter wins; invalid values fall back to the path rule.
func Resolve(path string, query url.Values) Brand {
	if hasSegmentPrefix(path, previewPrefix) {
		if b, ok := Parse(query.Get(QueryParam)); ok {
			return b
		}
	}
	if hasSegmentPrefix(path, konzeptPrefix) {
		return Konzept
	}
	return Default
}

// PathPrefix returns the URL prefix under which the brand's public pages
// are served ("" for the practice brand).
func PathPrefix(b Brand) string {
	if b == Konzept {
		return konzeptPrefix
	}
	return ""
}

// StripPrefix returns the page slug for a public path. "/konzept/team"
// yields "team", "/" and "/konzept" yield "".
func StripPrefix(path string) string {
	if hasSegmentPrefix(path, konzeptPrefix) {
		path = path[len(konzeptPrefix):]
	}
	return strings.Trim(path, "/")
}

// PagePath builds the public URL of a page slug for the given brand.
// The "home" slug maps to the brand root.
func PagePath(b Brand, slug string) string {
	prefix := PathPrefix(b)
	if slug == "" || slug == "home" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	return prefix + "/" + strings.Trim(slug, "/")
}

// hasSegmentPrefix reports whether path equals prefix or starts with
// prefix followed by a slash. "/konzepte" does not match "/konzept".
func hasSegmentPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying b.
func WithContext(ctx context.Context, b Brand) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// FromContext returns the brand stored by Middleware, or Default.
func FromContext(ctx context.Context) Brand {
	if b, ok := ctx.Value(contextKey{}).(Brand); ok {
		return b
	}
	return Default
}

// Middleware resolves the brand for every request, stores it in the
// request context and exposes it in the X-Brand response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := Resolve(r.URL.Path, r.URL.Query())
		w.Header().Set(HeaderName, string(b))
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), b)))
	})
}
