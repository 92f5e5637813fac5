// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/models"
)

func TestContactStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewContactStore(db)
	ctx := t.Context()

	subject := "Terminanfrage"
	c, err := s.Create(ctx, &models.ContactSubmission{
		Brand:   brand.Konzept,
		Name:    "Erika Mustermann",
		Email:   "erika@example.com",
		Subject: &subject,
		Message: "Ich hätte gern einen Termin.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM contact_submissions WHERE id = $1", c.ID) })

	if c.Status != models.ContactStatusNew {
		t.Errorf("status: got %q, want new", c.Status)
	}

	list, err := s.List(ctx, ContactFilter{Brand: brand.Konzept, Status: models.ContactStatusNew})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, item := range list {
		found = found || item.ID == c.ID
	}
	if !found {
		t.Error("submission missing from filtered list")
	}

	updated, err := s.SetStatus(ctx, c.ID, models.ContactStatusArchived)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != models.ContactStatusArchived {
		t.Errorf("status: got %q", updated.Status)
	}

	if err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
	if _, err := s.SetStatus(ctx, uuid.New(), models.ContactStatusRead); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown: got %v, want ErrNotFound", err)
	}
}
