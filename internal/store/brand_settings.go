// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"physiocms/internal/brand"
	"physiocms/internal/models"
)

// BrandSettingsStore handles the one-row-per-brand settings table.
type BrandSettingsStore struct {
	db *sql.DB
}

// NewBrandSettingsStore creates a new BrandSettingsStore.
func NewBrandSettingsStore(db *sql.DB) *BrandSettingsStore {
	return &BrandSettingsStore{db: db}
}

// Get returns the settings of a brand. A brand without a row yields
// zero-value settings rather than nil so callers can always render.
func (s *BrandSettingsStore) Get(ctx context.Context, b brand.Brand) (*models.BrandSettings, error) {
	bs := &models.BrandSettings{Brand: b}
	err := s.db.QueryRowContext(ctx, `
		SELECT site_name, active_preset_id, updated_at FROM brand_settings WHERE brand = $1
	`, b).Scan(&bs.SiteName, &bs.ActivePresetID, &bs.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		bs.SiteName = b.Label()
		return bs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get brand settings: %w", err)
	}
	return bs, nil
}

// SetSiteName updates the site name shown in titles and the footer.
func (s *BrandSettingsStore) SetSiteName(ctx context.Context, b brand.Brand, name string) (*models.BrandSettings, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brand_settings (brand, site_name, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (brand)
		DO UPDATE SET site_name = EXCLUDED.site_name, updated_at = EXCLUDED.updated_at
	`, b, name)
	if err != nil {
		return nil, fmt.Errorf("set site name: %w", err)
	}
	return s.Get(ctx, b)
}
