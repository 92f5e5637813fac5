// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"physiocms/internal/blocks"
	"physiocms/internal/brand"
	"physiocms/internal/models"
	"physiocms/internal/slug"
	"physiocms/internal/validation"
)

// Validation limits for pages.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxMetaDescLen = 500
	maxBlocks      = 200
)

// reservedSlugs are first path segments owned by the application.
var reservedSlugs = map[string]bool{
	"api":     true,
	"admin":   true,
	"preview": true,
	"konzept": true,
	"health":  true,
	"media":   true,
	"static":  true,
}

// pageInput is the JSON body of page create and replace requests.
type pageInput struct {
	Title           string            `json:"title"`
	Slug            string            `json:"slug"`
	Brand           brand.Brand       `json:"brand"`
	Status          models.PageStatus `json:"status"`
	MetaDescription *string           `json:"meta_description"`
	Blocks          []models.Block    `json:"blocks"`
}

// normalize fills defaults used by create: a slug derived from the
// title and draft status.
func (in *pageInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.Trim(strings.TrimSpace(in.Slug), "/")
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Title)
	}
	if in.Status == "" {
		in.Status = models.PageStatusDraft
	}
	if in.MetaDescription != nil {
		trimmed := strings.TrimSpace(*in.MetaDescription)
		if trimmed == "" {
			in.MetaDescription = nil
		} else {
			in.MetaDescription = &trimmed
		}
	}
}

// validatePage checks a normalized page payload and returns the first
// problem as a *validation.Error.
func validatePage(in *pageInput) error {
	switch {
	case in.Title == "":
		return validation.Errorf("title", "Titel ist erforderlich.")
	case utf8.RuneCountInString(in.Title) > maxTitleLen:
		return validation.Errorf("title", "Titel ist zu lang (höchstens %d Zeichen).", maxTitleLen)
	case !in.Brand.Valid():
		return validation.Errorf("brand", msgInvalidBrand)
	case !in.Status.Valid():
		return validation.Errorf("status", "Ungültiger Status „%s“.", in.Status)
	}
	if err := validateSlug(in.Slug); err != nil {
		return err
	}
	if in.MetaDescription != nil && utf8.RuneCountInString(*in.MetaDescription) > maxMetaDescLen {
		return validation.Errorf("meta_description", "Meta-Beschreibung ist zu lang (höchstens %d Zeichen).", maxMetaDescLen)
	}
	return validateBlocks(in.Blocks)
}

func validateSlug(s string) error {
	switch {
	case s == "":
		return validation.Errorf("slug", "Slug ist erforderlich.")
	case len(s) > maxSlugLen:
		return validation.Errorf("slug", "Slug ist zu lang (höchstens %d Zeichen).", maxSlugLen)
	case !slug.Valid(s):
		return validation.Errorf("slug", "Slug darf nur Kleinbuchstaben, Ziffern, Bindestriche und Schrägstriche enthalten.")
	}
	first, _, _ := strings.Cut(s, "/")
	if reservedSlugs[first] {
		return validation.Errorf("slug", "Der Slug „%s“ ist reserviert.", first)
	}
	return nil
}

func validateBlocks(list []models.Block) error {
	if len(list) > maxBlocks {
		return validation.Errorf("blocks", "Eine Seite darf höchstens %d Blöcke enthalten.", maxBlocks)
	}
	seen := make(map[uuid.UUID]bool, len(list))
	for i, b := range list {
		if b.ID != uuid.Nil {
			if seen[b.ID] {
				return validation.Errorf(blockField(i, "id"), "Block-ID kommt mehrfach vor.")
			}
			seen[b.ID] = true
		}
		if err := blocks.Validate(b.Type, b.Props); err != nil {
			if verr, ok := err.(*validation.Error); ok {
				return &validation.Error{Field: blockField(i, verr.Field), Message: verr.Message}
			}
			return err
		}
	}
	return nil
}

func blockField(i int, field string) string {
	return fmt.Sprintf("blocks[%d].%s", i, field)
}
