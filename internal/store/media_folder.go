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

// MediaFolderStore handles the media folder tree.
type MediaFolderStore struct {
	db *sql.DB
}

// NewMediaFolderStore creates a new MediaFolderStore.
func NewMediaFolderStore(db *sql.DB) *MediaFolderStore {
	return &MediaFolderStore{db: db}
}

const folderColumns = `id, name, parent_id, created_at`

func scanFolder(scanner interface{ Scan(...any) error }) (*models.MediaFolder, error) {
	var f models.MediaFolder
	if err := scanner.Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns every folder ordered by name. Clients build the tree from parent_id.
func (s *MediaFolderStore) List(ctx context.Context) ([]models.MediaFolder, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+folderColumns+` FROM media_folders ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list media folders: %w", err)
	}
	defer rows.Close()

	folders := []models.MediaFolder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media folder: %w", err)
		}
		folders = append(folders, *f)
	}
	return folders, rows.Err()
}

// FindByID returns a folder. Returns nil if not found.
func (s *MediaFolderStore) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaFolder, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM media_folders WHERE id = $1`, id)
	f, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media folder: %w", err)
	}
	return f, nil
}

// Create inserts a folder. Returns ErrConflict when a sibling has the
// same name and ErrNotFound when the parent does not exist.
func (s *MediaFolderStore) Create(ctx context.Context, name string, parentID *uuid.UUID) (*models.MediaFolder, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO media_folders (name, parent_id) VALUES ($1, $2)
		RETURNING `+folderColumns, name, parentID)
	f, err := scanFolder(row)
	switch {
	case isUniqueViolation(err):
		return nil, ErrConflict
	case isForeignKeyViolation(err):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("create media folder: %w", err)
	}
	return f, nil
}

// Update renames and/or moves a folder. Moving a folder below itself or
// one of its descendants returns ErrFolderCycle.
func (s *MediaFolderStore) Update(ctx context.Context, id uuid.UUID, name string, parentID *uuid.UUID) (*models.MediaFolder, error) {
	var updated *models.MediaFolder
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if parentID != nil {
			if *parentID == id {
				return ErrFolderCycle
			}
			var cycle bool
			err := tx.QueryRowContext(ctx, `
				WITH RECURSIVE ancestors AS (
					SELECT id, parent_id FROM media_folders WHERE id = $1
					UNION ALL
					SELECT f.id, f.parent_id FROM media_folders f
					JOIN ancestors a ON f.id = a.parent_id
				)
				SELECT EXISTS (SELECT 1 FROM ancestors WHERE id = $2)
			`, *parentID, id).Scan(&cycle)
			if err != nil {
				return fmt.Errorf("check folder ancestry: %w", err)
			}
			if cycle {
				return ErrFolderCycle
			}
		}

		row := tx.QueryRowContext(ctx, `
			UPDATE media_folders SET name = $1, parent_id = $2 WHERE id = $3
			RETURNING `+folderColumns, name, parentID, id)
		f, err := scanFolder(row)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrNotFound
		case isUniqueViolation(err):
			return ErrConflict
		case isForeignKeyViolation(err):
			return ErrNotFound
		case err != nil:
			return fmt.Errorf("update media folder: %w", err)
		}
		updated = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an empty folder. Returns ErrFolderNotEmpty when it
// still contains sub-folders or assets.
func (s *MediaFolderStore) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		var used bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM media_folders WHERE parent_id = $1)
			    OR EXISTS (SELECT 1 FROM media_assets WHERE folder_id = $1)
		`, id).Scan(&used)
		if err != nil {
			return fmt.Errorf("check folder contents: %w", err)
		}
		if used {
			return ErrFolderNotEmpty
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM media_folders WHERE id = $1`, id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrFolderNotEmpty
			}
			return fmt.Errorf("delete media folder: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
