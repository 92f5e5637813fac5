// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"physiocms/internal/consent"
)

func TestConsentGetUndecided(t *testing.T) {
	h := NewConsent(false)
	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/api/consent", nil))

	got := decodeBody[consentResponse](t, w)
	want := consentResponse{State: consent.Default(), Decided: false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestConsentPostThenGet(t *testing.T) {
	h := NewConsent(true)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	w := httptest.NewRecorder()
	h.Post(w, jsonRequest(t, http.MethodPost, "/api/consent", map[string]bool{"analytics": true}))
	if w.Code != http.StatusOK {
		t.Fatalf("post: %d %s", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != consent.CookieName {
		t.Fatalf("cookies = %+v", cookies)
	}
	c := cookies[0]
	if !c.Secure || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("cookie attributes: %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/consent", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	h.Get(w, req)

	got := decodeBody[consentResponse](t, w)
	want := consentResponse{
		State:   consent.State{V: consent.Version, Necessary: true, Analytics: true, Timestamp: now.UnixMilli()},
		Decided: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}
