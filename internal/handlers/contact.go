// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/middleware"
	"physiocms/internal/models"
	"physiocms/internal/ratelimit"
	"physiocms/internal/store"
	"physiocms/internal/validation"
)

// ContactRepository persists contact submissions. *store.ContactStore
// implements it.
type ContactRepository interface {
	Create(ctx context.Context, c *models.ContactSubmission) (*models.ContactSubmission, error)
	List(ctx context.Context, f store.ContactFilter) ([]models.ContactSubmission, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.ContactStatus) (*models.ContactSubmission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Contact receives contact form submissions and serves the admin inbox.
type Contact struct {
	submissions ContactRepository
	limiter     ratelimit.Limiter
}

// NewContact creates the Contact handler group. limiter bounds accepted
// submissions per email address and brand.
func NewContact(submissions ContactRepository, limiter ratelimit.Limiter) *Contact {
	return &Contact{submissions: submissions, limiter: limiter}
}

type contactInput struct {
	Name    string      `json:"name" validate:"required,max=120"`
	Email   string      `json:"email" validate:"required,email,max=200"`
	Phone   string      `json:"phone" validate:"max=40"`
	Subject string      `json:"subject" validate:"max=200"`
	Message string      `json:"message" validate:"required,max=5000"`
	Brand   brand.Brand `json:"brand" validate:"-"`
	Consent bool        `json:"consent" validate:"-"`
	Website string      `json:"website" validate:"-"`
}

func (in *contactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

type okBody struct {
	OK bool `json:"ok"`
}

// Submit validates and stores a contact form submission. Submissions
// with the honeypot field filled in are answered like accepted ones and
// dropped.
func (h *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	var in contactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Website) != "" {
		slog.Info("contact honeypot triggered", "remote", r.RemoteAddr)
		writeJSON(w, http.StatusOK, okBody{OK: true})
		return
	}

	in.normalize()
	if err := validation.Struct(&in); err != nil {
		writeValidation(w, err)
		return
	}
	if !in.Consent {
		writeValidation(w, validation.Errorf("consent", "Bitte stimmen Sie der Verarbeitung Ihrer Daten zu."))
		return
	}

	b := in.Brand
	if b == "" {
		b = brand.FromContext(r.Context())
	}
	if !b.Valid() {
		writeValidation(w, validation.Errorf("brand", msgInvalidBrand))
		return
	}

	key := ratelimit.ContactKey(in.Email, b)
	allowed, err := h.limiter.Allow(r.Context(), key)
	if err != nil {
		serverError(w, r, "contact rate limiter failed", err)
		return
	}
	if !allowed {
		writeError(w, http.StatusTooManyRequests, middleware.MsgTooManyRequests)
		return
	}

	sub := &models.ContactSubmission{
		Brand:   b,
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}
	if in.Phone != "" {
		sub.Phone = &in.Phone
	}
	if in.Subject != "" {
		sub.Subject = &in.Subject
	}

	created, err := h.submissions.Create(r.Context(), sub)
	if err != nil {
		// Only accepted submissions count against the limit.
		if rerr := h.limiter.Release(r.Context(), key); rerr != nil {
			slog.Warn("contact rate limit release failed", "error", rerr)
		}
		serverError(w, r, "store contact submission failed", err)
		return
	}
	slog.Info("contact submission received", "id", created.ID, "brand", b)
	writeJSON(w, http.StatusOK, okBody{OK: true})
}

// List returns submissions newest first, filtered by ?brand= and ?status=.
func (h *Contact) List(w http.ResponseWriter, r *http.Request) {
	b, ok := queryBrand(w, r)
	if !ok {
		return
	}
	status := models.ContactStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "Ungültiger Status.")
		return
	}

	items, err := h.submissions.List(r.Context(), store.ContactFilter{Brand: b, Status: status})
	if err != nil {
		serverError(w, r, "list contact submissions failed", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type contactStatusInput struct {
	Status models.ContactStatus `json:"status"`
}

// SetStatus marks a submission as new, read or archived.
func (h *Contact) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in contactStatusInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if !in.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Ungültiger Status.")
		return
	}
	sub, err := h.submissions.SetStatus(r.Context(), id, in.Status)
	if err != nil {
		storeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// Delete removes a submission.
func (h *Contact) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.submissions.Delete(r.Context(), id); err != nil {
		storeError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
