// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"physiocms/internal/brand"
)

// PageStatus represents the publishing state of a page.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
)

// Valid reports whether s is a known status.
func (s PageStatus) Valid() bool {
	return s == PageStatusDraft || s == PageStatusPublished
}

// Page is a CMS page composed of ordered blocks. Slugs are unique per
// brand, so both brands may own a page called "team".
type Page struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Brand           brand.Brand `json:"brand"`
	Status          PageStatus  `json:"status"`
	MetaDescription *string     `json:"meta_description,omitempty"`
	Blocks          []Block     `json:"blocks"`
	PublishedAt     *time.Time  `json:"published_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// IsPublished returns true if the page is visible on the public site.
func (p *Page) IsPublished() bool {
	return p.Status == PageStatusPublished
}

// Block is a typed content unit. Props is an untyped JSON object whose
// shape depends on Type; the blocks package knows how to validate and
// render each type.
type Block struct {
	ID    uuid.UUID       `json:"id"`
	Type  string          `json:"type"`
	Sort  int             `json:"sort"`
	Props json.RawMessage `json:"props"`
}

// PageRevision is a snapshot of a page and its blocks taken right before
// a full-replace save, so editors can roll back a bad edit.
type PageRevision struct {
	ID        uuid.UUID       `json:"id"`
	PageID    uuid.UUID       `json:"page_id"`
	Snapshot  json.RawMessage `json:"snapshot"`
	CreatedBy *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
