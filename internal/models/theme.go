// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"physiocms/internal/brand"
)

// ThemePreset is a named bundle of CSS custom-property values
// ("--color-primary": "#0a6e6e") for one brand.
type ThemePreset struct {
	ID        uuid.UUID         `json:"id"`
	Brand     brand.Brand       `json:"brand"`
	Name      string            `json:"name"`
	Tokens    map[string]string `json:"tokens"`
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// BrandSettings holds the per-brand pointer to the active theme preset
// plus a few site-wide values.
type BrandSettings struct {
	Brand          brand.Brand `json:"brand"`
	SiteName       string      `json:"site_name"`
	ActivePresetID *uuid.UUID  `json:"active_preset_id,omitempty"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
