// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package consent reads and writes the cookie-consent cookie.
package consent

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

const (
	// CookieName is the consent cookie.
	CookieName = "pc_consent"
	// Version is the current cookie schema version.
	Version = 1
	// MaxAge is how long a consent decision is remembered.
	MaxAge = 180 * 24 * time.Hour
)

// State is the visitor's consent decision.
type State struct {
	V         int   `json:"v"`
	Necessary bool  `json:"necessary"`
	Analytics bool  `json:"analytics"`
	Marketing bool  `json:"marketing"`
	Timestamp int64 `json:"timestamp"`
}

// Default is the state before a visitor decides: necessary only.
func Default() State {
	return State{V: Version, Necessary: true}
}

// legacy covers version 0 cookies, which had no "v" and used
// "statistics" before it was renamed to "analytics".
type legacy struct {
	V          *int  `json:"v"`
	Necessary  *bool `json:"necessary"`
	Analytics  *bool `json:"analytics"`
	Statistics *bool `json:"statistics"`
	Marketing  *bool `json:"marketing"`
	Timestamp  int64 `json:"timestamp"`
}

// Parse decodes a cookie value and migrates older versions. ok is false
// for empty, malformed or future-version values.
func Parse(value string) (State, bool) {
	if value == "" {
		return State{}, false
	}
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return State{}, false
	}

	var raw legacy
	if err := json.Unmarshal([]byte(decoded), &raw); err != nil {
		return State{}, false
	}

	version := 0
	if raw.V != nil {
		version = *raw.V
	}

	switch version {
	case 0:
		if raw.Analytics == nil && raw.Statistics == nil && raw.Marketing == nil {
			return State{}, false
		}
		analytics := raw.Analytics
		if analytics == nil {
			analytics = raw.Statistics
		}
		return State{
			V:         Version,
			Necessary: true,
			Analytics: deref(analytics),
			Marketing: deref(raw.Marketing),
			Timestamp: raw.Timestamp,
		}, true
	case Version:
		return State{
			V:         Version,
			Necessary: true,
			Analytics: deref(raw.Analytics),
			Marketing: deref(raw.Marketing),
			Timestamp: raw.Timestamp,
		}, true
	default:
		return State{}, false
	}
}

// Encode returns the URL-encoded JSON cookie value.
func Encode(s State) string {
	data, _ := json.Marshal(s)
	return url.QueryEscape(string(data))
}

// Read returns the consent state of r, or Default with decided=false.
func Read(r *http.Request) (s State, decided bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Default(), false
	}
	if s, ok := Parse(c.Value); ok {
		return s, true
	}
	return Default(), false
}

// Write records a decision. Necessary is always true and the timestamp
// is set to now.
func Write(w http.ResponseWriter, analytics, marketing, secure bool, now time.Time) State {
	s := State{
		V:         Version,
		Necessary: true,
		Analytics: analytics,
		Marketing: marketing,
		Timestamp: now.UnixMilli(),
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    Encode(s),
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func deref(b *bool) bool {
	return b != nil && *b
}
