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

	"physiocms/internal/brand"
	"physiocms/internal/models"
)

// SiteDocStore keeps the navigation and footer JSON documents, one per
// brand and kind. Documents are validated before they reach the store.
type SiteDocStore struct {
	db *sql.DB
}

// NewSiteDocStore creates a new SiteDocStore.
func NewSiteDocStore(db *sql.DB) *SiteDocStore {
	return &SiteDocStore{db: db}
}

// Get decodes the stored document into dst. It reports false when the
// brand has no document of that kind yet.
func (s *SiteDocStore) Get(ctx context.Context, b brand.Brand, kind models.DocKind, dst any) (bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT document FROM site_documents WHERE brand = $1 AND kind = $2
	`, b, kind).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s document: %w", kind, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s document: %w", kind, err)
	}
	return true, nil
}

// Put stores a document, replacing the previous one.
func (s *SiteDocStore) Put(ctx context.Context, b brand.Brand, kind models.DocKind, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", kind, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO site_documents (brand, kind, document, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (brand, kind)
		DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`, b, kind, string(data))
	if err != nil {
		return fmt.Errorf("put %s document: %w", kind, err)
	}
	return nil
}
