// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"physiocms/internal/models"
)

// MediaStore handles media asset records. The binary objects themselves
// live in S3; see the storage package.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// mediaColumns lists the columns selected in media queries.
const mediaColumns = `id, folder_id, filename, original_name, content_type, size_bytes,
	width, height, bucket, s3_key, thumb_s3_key, alt_text, uploader_id, created_at`

func scanMedia(scanner interface{ Scan(...any) error }) (*models.MediaAsset, error) {
	var m models.MediaAsset
	err := scanner.Scan(
		&m.ID, &m.FolderID, &m.Filename, &m.OriginalName, &m.ContentType, &m.SizeBytes,
		&m.Width, &m.Height, &m.Bucket, &m.S3Key, &m.ThumbS3Key, &m.AltText,
		&m.UploaderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MediaFilter narrows List. With neither field set every asset is returned.
type MediaFilter struct {
	FolderID *uuid.UUID
	RootOnly bool // assets not filed in any folder
}

// Create inserts a new asset record. Returns ErrNotFound when the folder does not exist.
func (s *MediaStore) Create(ctx context.Context, m *models.MediaAsset) (*models.MediaAsset, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO media_assets (folder_id, filename, original_name, content_type, size_bytes,
			width, height, bucket, s3_key, thumb_s3_key, alt_text, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+mediaColumns,
		m.FolderID, m.Filename, m.OriginalName, m.ContentType, m.SizeBytes,
		m.Width, m.Height, m.Bucket, m.S3Key, m.ThumbS3Key, m.AltText, m.UploaderID,
	)
	created, err := scanMedia(row)
	if isForeignKeyViolation(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return created, nil
}

// FindByID retrieves a single asset. Returns nil if not found.
func (s *MediaStore) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media_assets WHERE id = $1`, id)
	m, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// List returns assets newest first, with pagination.
func (s *MediaStore) List(ctx context.Context, f MediaFilter, limit, offset int) ([]models.MediaAsset, error) {
	query := `SELECT ` + mediaColumns + ` FROM media_assets`
	args := []any{limit, offset}
	switch {
	case f.FolderID != nil:
		query += ` WHERE folder_id = $3`
		args = append(args, *f.FolderID)
	case f.RootOnly:
		query += ` WHERE folder_id IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	items := []models.MediaAsset{}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Update sets the alt text and folder of an asset. Returns ErrNotFound
// when the asset or the target folder does not exist.
func (s *MediaStore) Update(ctx context.Context, id uuid.UUID, altText *string, folderID *uuid.UUID) (*models.MediaAsset, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE media_assets SET alt_text = $1, folder_id = $2 WHERE id = $3
		RETURNING `+mediaColumns, altText, folderID, id)
	m, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) || isForeignKeyViolation(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update media: %w", err)
	}
	return m, nil
}

// Delete removes an asset record and returns it so the caller can clean
// up the corresponding S3 objects. Returns nil if not found.
func (s *MediaStore) Delete(ctx context.Context, id uuid.UUID) (*models.MediaAsset, error) {
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM media_assets WHERE id = $1
		RETURNING `+mediaColumns, id)
	m, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return m, nil
}
