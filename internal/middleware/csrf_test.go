// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// csrfEcho records the token the middleware put into the context.
func csrfEcho(secure bool, seen *string) http.Handler {
	return NewCSRF(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = CSRFTokenFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func csrfCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func TestCSRFIssuesCookie(t *testing.T) {
	for _, secure := range []bool{false, true} {
		var seen string
		w := httptest.NewRecorder()
		csrfEcho(secure, &seen).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

		c := csrfCookie(t, w)
		if c.Secure != secure {
			t.Errorf("Secure: got %v, want %v", c.Secure, secure)
		}
		if c.HttpOnly {
			t.Error("the editor script must be able to read the cookie")
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Errorf("SameSite: got %v, want Strict", c.SameSite)
		}
		if len(c.Value) != 2*csrfTokenLength {
			t.Errorf("token length: got %d, want %d", len(c.Value), 2*csrfTokenLength)
		}
		if seen != c.Value {
			t.Errorf("context token %q does not match cookie %q", seen, c.Value)
		}
	}
}

func TestCSRFReusesCookie(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/preview/x", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "existing"})
	w := httptest.NewRecorder()
	csrfEcho(false, &seen).ServeHTTP(w, req)

	if seen != "existing" {
		t.Errorf("context token: got %q, want %q", seen, "existing")
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no new cookie should be issued when one is present")
	}
}

func TestCSRFTokenFromCtxEmpty(t *testing.T) {
	if got := CSRFTokenFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestCSRFMethods(t *testing.T) {
	const token = "tok-123"

	tests := []struct {
		name   string
		method string
		header string
		form   string
		want   int
	}{
		{"get passes", http.MethodGet, "", "", http.StatusOK},
		{"head passes", http.MethodHead, "", "", http.StatusOK},
		{"options passes", http.MethodOptions, "", "", http.StatusOK},
		{"post without token", http.MethodPost, "", "", http.StatusForbidden},
		{"put without token", http.MethodPut, "", "", http.StatusForbidden},
		{"patch without token", http.MethodPatch, "", "", http.StatusForbidden},
		{"delete without token", http.MethodDelete, "", "", http.StatusForbidden},
		{"post wrong header", http.MethodPost, "tok-999", "", http.StatusForbidden},
		{"post header", http.MethodPost, token, "", http.StatusOK},
		{"put header", http.MethodPut, token, "", http.StatusOK},
		{"patch header", http.MethodPatch, token, "", http.StatusOK},
		{"delete header", http.MethodDelete, token, "", http.StatusOK},
		{"post form field", http.MethodPost, "", token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.form != "" {
				body := url.Values{CSRFFormField: {tt.form}}.Encode()
				req = httptest.NewRequest(tt.method, "/api/admin/pages", strings.NewReader(body))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(tt.method, "/api/admin/pages", nil)
			}
			req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: token})
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}

			var seen string
			w := httptest.NewRecorder()
			csrfEcho(false, &seen).ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status: got %d, want %d", w.Code, tt.want)
			}
		})
	}
}
