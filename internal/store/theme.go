// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/models"
)

// ThemeStore handles theme presets. Which preset is active lives in
// brand_settings, so each brand has at most one active preset.
type ThemeStore struct {
	db *sql.DB
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{db: db}
}

// themeSelect joins brand_settings to compute is_active.
const themeSelect = `
	SELECT t.id, t.brand, t.name, t.tokens,
		COALESCE(bs.active_preset_id = t.id, FALSE),
		t.created_at, t.updated_at
	FROM theme_presets t
	LEFT JOIN brand_settings bs ON bs.brand = t.brand`

func scanTheme(scanner interface{ Scan(...any) error }) (*models.ThemePreset, error) {
	var t models.ThemePreset
	var tokens []byte
	err := scanner.Scan(&t.ID, &t.Brand, &t.Name, &tokens, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tokens, &t.Tokens); err != nil {
		return nil, fmt.Errorf("decode tokens of preset %s: %w", t.ID, err)
	}
	if t.Tokens == nil {
		t.Tokens = map[string]string{}
	}
	return &t, nil
}

// List returns presets ordered by brand and name. An empty brand lists both.
func (s *ThemeStore) List(ctx context.Context, b brand.Brand) ([]models.ThemePreset, error) {
	query := themeSelect
	var args []any
	if b != "" {
		query += ` WHERE t.brand = $1`
		args = append(args, b)
	}
	query += ` ORDER BY t.brand, t.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list theme presets: %w", err)
	}
	defer rows.Close()

	items := []models.ThemePreset{}
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theme preset: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// FindByID retrieves a preset. Returns nil if not found.
func (s *ThemeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ThemePreset, error) {
	t, err := scanTheme(s.db.QueryRowContext(ctx, themeSelect+` WHERE t.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme preset: %w", err)
	}
	return t, nil
}

// FindActive returns the brand's active preset, or nil if none is set.
func (s *ThemeStore) FindActive(ctx context.Context, b brand.Brand) (*models.ThemePreset, error) {
	t, err := scanTheme(s.db.QueryRowContext(ctx,
		themeSelect+` WHERE t.brand = $1 AND bs.active_preset_id = t.id`, b))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active theme preset: %w", err)
	}
	return t, nil
}

// Create inserts a preset. Returns ErrConflict when the name is taken in the brand.
func (s *ThemeStore) Create(ctx context.Context, t *models.ThemePreset) (*models.ThemePreset, error) {
	tokens, err := json.Marshal(t.Tokens)
	if err != nil {
		return nil, fmt.Errorf("encode tokens: %w", err)
	}

	var id uuid.UUID
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO theme_presets (brand, name, tokens) VALUES ($1, $2, $3)
		RETURNING id
	`, t.Brand, t.Name, string(tokens)).Scan(&id)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("create theme preset: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update replaces a preset's name and tokens. The brand of a preset is fixed.
func (s *ThemeStore) Update(ctx context.Context, id uuid.UUID, name string, tokens map[string]string) (*models.ThemePreset, error) {
	data, err := json.Marshal(tokens)
	if err != nil {
		return nil, fmt.Errorf("encode tokens: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE theme_presets SET name = $1, tokens = $2, updated_at = NOW() WHERE id = $3
	`, name, string(data), id)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update theme preset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// Activate makes the preset the active one of its brand, replacing the
// previous one, in a single transaction. Returns the preset's brand.
func (s *ThemeStore) Activate(ctx context.Context, id uuid.UUID) (brand.Brand, error) {
	var b brand.Brand
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT brand FROM theme_presets WHERE id = $1 FOR SHARE`, id).Scan(&b)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find theme preset: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO brand_settings (brand, active_preset_id, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (brand)
			DO UPDATE SET active_preset_id = EXCLUDED.active_preset_id, updated_at = EXCLUDED.updated_at
		`, b, id)
		if err != nil {
			return fmt.Errorf("activate theme preset: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return b, nil
}

// Delete removes a preset. The active preset of a brand cannot be
// deleted (ErrActivePreset).
func (s *ThemeStore) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		var active bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM brand_settings WHERE active_preset_id = $1)
		`, id).Scan(&active)
		if err != nil {
			return fmt.Errorf("check active preset: %w", err)
		}
		if active {
			return ErrActivePreset
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM theme_presets WHERE id = $1`, id)
		if isForeignKeyViolation(err) {
			return ErrActivePreset
		}
		if err != nil {
			return fmt.Errorf("delete theme preset: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
