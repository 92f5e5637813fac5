// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"physiocms/internal/consent"
)

// Consent reads and writes the cookie consent state.
type Consent struct {
	secure bool
	now    func() time.Time
}

// NewConsent creates the Consent handler group. secure sets the Secure
// flag on the consent cookie.
func NewConsent(secure bool) *Consent {
	return &Consent{secure: secure, now: time.Now}
}

type consentResponse struct {
	consent.State
	Decided bool `json:"decided"`
}

// Get returns the stored choice, or the defaults with decided=false.
func (h *Consent) Get(w http.ResponseWriter, r *http.Request) {
	s, decided := consent.Read(r)
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, consentResponse{State: s, Decided: decided})
}

type consentInput struct {
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// Post stores a new choice. Necessary cookies are always allowed.
func (h *Consent) Post(w http.ResponseWriter, r *http.Request) {
	var in consentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s := consent.Write(w, in.Analytics, in.Marketing, h.secure, h.now())
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, consentResponse{State: s, Decided: true})
}
