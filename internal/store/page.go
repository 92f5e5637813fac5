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
	"strconv"
	"strings"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/models"
)

// pageColumns lists all columns for pages SELECTs.
const pageColumns = `id, title, slug, brand, status, meta_description,
	published_at, created_at, updated_at`

// PageStore handles pages and their blocks. Blocks are always written
// together with their page inside one transaction.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

func scanPage(scanner interface{ Scan(...any) error }) (*models.Page, error) {
	var p models.Page
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Brand, &p.Status, &p.MetaDescription,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all pages without blocks, ordered by brand then title.
// An empty brand lists both brands.
func (s *PageStore) List(ctx context.Context, b brand.Brand) ([]models.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages`
	var args []any
	if b != "" {
		query += ` WHERE brand = $1`
		args = append(args, b)
	}
	query += ` ORDER BY brand, title`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	pages := []models.Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, *p)
	}
	return pages, rows.Err()
}

// FindByID returns a page with its blocks ordered by sort. Returns nil if not found.
func (s *PageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	return findPage(ctx, s.db, `WHERE id = $1`, id)
}

// FindBySlug returns a page of any status by brand and slug. Returns nil if not found.
func (s *PageStore) FindBySlug(ctx context.Context, b brand.Brand, slug string) (*models.Page, error) {
	return findPage(ctx, s.db, `WHERE brand = $1 AND slug = $2`, b, slug)
}

// FindPublished returns a published page by brand and slug. Returns nil
// for drafts and unknown slugs.
func (s *PageStore) FindPublished(ctx context.Context, b brand.Brand, slug string) (*models.Page, error) {
	return findPage(ctx, s.db, `WHERE brand = $1 AND slug = $2 AND status = 'published'`, b, slug)
}

func findPage(ctx context.Context, q querier, where string, args ...any) (*models.Page, error) {
	row := q.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages `+where, args...)
	p, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}

	p.Blocks, err = loadBlocks(ctx, q, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func loadBlocks(ctx context.Context, q querier, pageID uuid.UUID) ([]models.Block, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, type, sort, props FROM blocks
		WHERE page_id = $1
		ORDER BY sort
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	defer rows.Close()

	blocks := []models.Block{}
	for rows.Next() {
		var b models.Block
		var props []byte
		if err := rows.Scan(&b.ID, &b.Type, &b.Sort, &props); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		b.Props = json.RawMessage(props)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// insertBlocks writes blocks with sequential sort values 0..N-1 in a
// single multi-row INSERT. Blocks without an ID get a fresh one.
func insertBlocks(ctx context.Context, tx *sql.Tx, pageID uuid.UUID, blocks []models.Block) error {
	if len(blocks) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO blocks (id, page_id, type, sort, props) VALUES `)
	args := make([]any, 0, len(blocks)*5)
	for i := range blocks {
		if blocks[i].ID == uuid.Nil {
			blocks[i].ID = uuid.New()
		}
		blocks[i].Sort = i
		props := blocks[i].Props
		if len(props) == 0 {
			props = json.RawMessage(`{}`)
		}

		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 5
		sb.WriteString("($" + strconv.Itoa(n+1) + ", $" + strconv.Itoa(n+2) + ", $" +
			strconv.Itoa(n+3) + ", $" + strconv.Itoa(n+4) + ", $" + strconv.Itoa(n+5) + ")")
		args = append(args, blocks[i].ID, pageID, blocks[i].Type, i, string(props))
	}

	if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert blocks: duplicate block id: %w", ErrConflict)
		}
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}

// Create inserts a page and its blocks. Returns ErrConflict when the
// slug is already taken within the page's brand.
func (s *PageStore) Create(ctx context.Context, p *models.Page) (*models.Page, error) {
	var saved *models.Page
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO pages (title, slug, brand, status, meta_description, published_at)
			VALUES ($1, $2, $3, $4, $5, CASE WHEN $4 = 'published' THEN NOW() END)
			RETURNING `+pageColumns,
			p.Title, p.Slug, p.Brand, p.Status, p.MetaDescription,
		)
		created, err := scanPage(row)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("create page: %w", err)
		}

		if err := insertBlocks(ctx, tx, created.ID, p.Blocks); err != nil {
			return err
		}

		saved, err = findPage(ctx, tx, `WHERE id = $1`, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Replace overwrites a page and all of its blocks. The previous state is
// kept as a revision, then the page row is updated, its blocks deleted
// and the new list inserted, all in one transaction. Returns ErrNotFound
// for an unknown page and ErrConflict for a taken slug.
func (s *PageStore) Replace(ctx context.Context, p *models.Page, editor *uuid.UUID) (*models.Page, error) {
	var saved *models.Page
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		saved, err = replacePage(ctx, tx, p, editor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func replacePage(ctx context.Context, tx *sql.Tx, p *models.Page, editor *uuid.UUID) (*models.Page, error) {
	current, err := findPage(ctx, tx, `WHERE id = $1 FOR UPDATE`, p.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}

	if err := snapshot(ctx, tx, current, editor); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE pages SET
			title = $1, slug = $2, brand = $3, status = $4, meta_description = $5,
			published_at = CASE
				WHEN $4 = 'draft' THEN NULL
				WHEN published_at IS NULL THEN NOW()
				ELSE published_at
			END,
			updated_at = NOW()
		WHERE id = $6
	`, p.Title, p.Slug, p.Brand, p.Status, p.MetaDescription, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update page: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE page_id = $1`, p.ID); err != nil {
		return nil, fmt.Errorf("delete blocks: %w", err)
	}
	if err := insertBlocks(ctx, tx, p.ID, p.Blocks); err != nil {
		return nil, err
	}

	return findPage(ctx, tx, `WHERE id = $1`, p.ID)
}

// snapshot stores the page as it is now in page_revisions.
func snapshot(ctx context.Context, tx *sql.Tx, p *models.Page, editor *uuid.UUID) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO page_revisions (page_id, snapshot, created_by) VALUES ($1, $2, $3)
	`, p.ID, string(data), editor)
	if err != nil {
		return fmt.Errorf("insert revision: %w", err)
	}
	return nil
}

// SetStatus publishes or unpublishes a page. Returns ErrNotFound for an unknown page.
func (s *PageStore) SetStatus(ctx context.Context, id uuid.UUID, status models.PageStatus) (*models.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE pages SET
			status = $1,
			published_at = CASE
				WHEN $1 = 'draft' THEN NULL
				WHEN published_at IS NULL THEN NOW()
				ELSE published_at
			END,
			updated_at = NOW()
		WHERE id = $2
		RETURNING `+pageColumns, status, id)
	p, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set page status: %w", err)
	}
	return p, nil
}

// Delete removes a page's blocks and then the page in one transaction.
// Returns ErrNotFound for an unknown page.
func (s *PageStore) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE page_id = $1`, id); err != nil {
			return fmt.Errorf("delete blocks: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// revisionColumns lists all columns for page_revisions SELECTs.
const revisionColumns = `id, page_id, snapshot, created_by, created_at`

func scanRevision(scanner interface{ Scan(...any) error }) (*models.PageRevision, error) {
	var r models.PageRevision
	var snap []byte
	if err := scanner.Scan(&r.ID, &r.PageID, &snap, &r.CreatedBy, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Snapshot = json.RawMessage(snap)
	return &r, nil
}

// Revisions returns all revisions of a page, newest first.
func (s *PageStore) Revisions(ctx context.Context, pageID uuid.UUID) ([]models.PageRevision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+revisionColumns+`
		FROM page_revisions
		WHERE page_id = $1
		ORDER BY created_at DESC
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	revisions := []models.PageRevision{}
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, *r)
	}
	return revisions, rows.Err()
}

// Restore replaces a page with the content of one of its revisions. The
// state being replaced becomes a new revision, so a restore can itself
// be undone. Returns ErrNotFound when the revision does not belong to the page.
func (s *PageStore) Restore(ctx context.Context, pageID, revisionID uuid.UUID, editor *uuid.UUID) (*models.Page, error) {
	var saved *models.Page
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			SELECT `+revisionColumns+` FROM page_revisions WHERE id = $1 AND page_id = $2
		`, revisionID, pageID)
		rev, err := scanRevision(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find revision: %w", err)
		}

		var p models.Page
		if err := json.Unmarshal(rev.Snapshot, &p); err != nil {
			return fmt.Errorf("decode revision %s: %w", revisionID, err)
		}
		p.ID = pageID

		saved, err = replacePage(ctx, tx, &p, editor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
