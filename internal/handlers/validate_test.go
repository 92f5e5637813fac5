// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/models"
	"physiocms/internal/validation"
)

func TestPageInputNormalize(t *testing.T) {
	blank := "   "
	in := pageInput{Title: "  Über uns  ", MetaDescription: &blank}
	in.normalize()

	if in.Title != "Über uns" {
		t.Errorf("Title = %q", in.Title)
	}
	if in.Slug != "ueber-uns" {
		t.Errorf("Slug = %q, want derived from title", in.Slug)
	}
	if in.Status != models.PageStatusDraft {
		t.Errorf("Status = %q, want draft", in.Status)
	}
	if in.MetaDescription != nil {
		t.Error("blank meta description should become nil")
	}
}

func TestValidatePage(t *testing.T) {
	heroProps := json.RawMessage(`{"heading":"Hallo"}`)
	dup := uuid.New()

	valid := func() pageInput {
		return pageInput{
			Title:  "Leistungen",
			Slug:   "leistungen",
			Brand:  brand.Physiotherapy,
			Status: models.PageStatusDraft,
			Blocks: []models.Block{{Type: "hero", Props: heroProps}},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*pageInput)
		wantField string
	}{
		{"valid", func(*pageInput) {}, ""},
		{"nested slug", func(p *pageInput) { p.Slug = "leistungen/manuelle-therapie" }, ""},
		{"empty title", func(p *pageInput) { p.Title = "" }, "title"},
		{"title too long", func(p *pageInput) { p.Title = strings.Repeat("ä", 301) }, "title"},
		{"bad brand", func(p *pageInput) { p.Brand = "other" }, "brand"},
		{"bad status", func(p *pageInput) { p.Status = "archived" }, "status"},
		{"slug charset", func(p *pageInput) { p.Slug = "Leistungen_2" }, "slug"},
		{"slug too long", func(p *pageInput) { p.Slug = strings.Repeat("a", 301) }, "slug"},
		{"reserved slug", func(p *pageInput) { p.Slug = "admin" }, "slug"},
		{"reserved prefix", func(p *pageInput) { p.Slug = "konzept/team" }, "slug"},
		{"too many blocks", func(p *pageInput) {
			p.Blocks = make([]models.Block, 201)
			for i := range p.Blocks {
				p.Blocks[i] = models.Block{Type: "divider", Props: json.RawMessage(`{}`)}
			}
		}, "blocks"},
		{"unknown block type", func(p *pageInput) { p.Blocks[0].Type = "carousel" }, "blocks[0].type"},
		{"props not object", func(p *pageInput) { p.Blocks[0].Props = json.RawMessage(`[]`) }, "blocks[0].props"},
		{"missing required prop", func(p *pageInput) { p.Blocks[0].Props = json.RawMessage(`{}`) }, "blocks[0].props.heading"},
		{"duplicate block ids", func(p *pageInput) {
			p.Blocks = []models.Block{
				{ID: dup, Type: "hero", Props: heroProps},
				{ID: dup, Type: "hero", Props: heroProps},
			}
		}, "blocks[1].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			err := validatePage(&in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("validatePage() = %v", err)
				}
				return
			}
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("validatePage() = %v, want *validation.Error", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q (%s)", verr.Field, tt.wantField, verr.Message)
			}
		})
	}
}
