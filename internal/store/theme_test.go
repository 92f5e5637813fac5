// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/models"
)

func TestThemeStoreActivate(t *testing.T) {
	db := testDB(t)
	s := NewThemeStore(db)
	settings := NewBrandSettingsStore(db)
	ctx := t.Context()

	before, err := settings.Get(ctx, brand.Konzept)
	if err != nil {
		t.Fatalf("Get settings: %v", err)
	}

	tokens := map[string]string{"--color-primary": "#0a7d6b", "--radius": "8px"}
	a, err := s.Create(ctx, &models.ThemePreset{Brand: brand.Konzept, Name: "A " + uuid.NewString()[:8], Tokens: tokens})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := s.Create(ctx, &models.ThemePreset{Brand: brand.Konzept, Name: "B " + uuid.NewString()[:8], Tokens: map[string]string{}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("UPDATE brand_settings SET active_preset_id = $1 WHERE brand = $2", before.ActivePresetID, brand.Konzept)
		db.Exec("DELETE FROM theme_presets WHERE id IN ($1, $2)", a.ID, b.ID)
	})

	if diff := cmp.Diff(tokens, a.Tokens); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}

	if _, err := s.Create(ctx, &models.ThemePreset{Brand: brand.Konzept, Name: a.Name}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate name: got %v, want ErrConflict", err)
	}

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := s.Activate(ctx, id)
		if err != nil {
			t.Fatalf("Activate: %v", err)
		}
		if got != brand.Konzept {
			t.Errorf("Activate brand: got %q", got)
		}
	}

	active, err := s.FindActive(ctx, brand.Konzept)
	if err != nil || active == nil {
		t.Fatalf("FindActive: %v, %v", active, err)
	}
	if active.ID != b.ID || !active.IsActive {
		t.Errorf("active preset: got %s, want %s", active.ID, b.ID)
	}

	list, err := s.List(ctx, brand.Konzept)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	activeCount := 0
	for _, p := range list {
		if p.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Errorf("expected exactly one active preset, got %d", activeCount)
	}

	if err := s.Delete(ctx, b.ID); !errors.Is(err, ErrActivePreset) {
		t.Errorf("delete active: got %v, want ErrActivePreset", err)
	}
	if err := s.Delete(ctx, a.ID); err != nil {
		t.Errorf("delete inactive: %v", err)
	}
	if _, err := s.Activate(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("activate unknown: got %v, want ErrNotFound", err)
	}
}

func TestBrandSettingsSiteName(t *testing.T) {
	db := testDB(t)
	s := NewBrandSettingsStore(db)
	ctx := t.Context()

	before, err := s.Get(ctx, brand.Physiotherapy)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	t.Cleanup(func() { s.SetSiteName(context.Background(), brand.Physiotherapy, before.SiteName) })

	got, err := s.SetSiteName(ctx, brand.Physiotherapy, "Praxis am See")
	if err != nil {
		t.Fatalf("SetSiteName: %v", err)
	}
	if got.SiteName != "Praxis am See" {
		t.Errorf("site name: got %q", got.SiteName)
	}
}
