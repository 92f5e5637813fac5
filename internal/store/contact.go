// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"physiocms/internal/brand"
	"physiocms/internal/models"
)

// ContactStore handles contact form submissions.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, brand, name, email, phone, subject, message, status, created_at`

func scanContact(scanner interface{ Scan(...any) error }) (*models.ContactSubmission, error) {
	var c models.ContactSubmission
	err := scanner.Scan(&c.ID, &c.Brand, &c.Name, &c.Email, &c.Phone, &c.Subject,
		&c.Message, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ContactFilter narrows List. Zero values match everything.
type ContactFilter struct {
	Brand  brand.Brand
	Status models.ContactStatus
}

// Create stores a submission with status new.
func (s *ContactStore) Create(ctx context.Context, c *models.ContactSubmission) (*models.ContactSubmission, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO contact_submissions (brand, name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+contactColumns,
		c.Brand, c.Name, c.Email, c.Phone, c.Subject, c.Message)
	created, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return created, nil
}

// List returns submissions newest first.
func (s *ContactStore) List(ctx context.Context, f ContactFilter) ([]models.ContactSubmission, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_submissions WHERE TRUE`
	var args []any
	if f.Brand != "" {
		args = append(args, f.Brand)
		query += ` AND brand = $` + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	items := []models.ContactSubmission{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// SetStatus changes the triage status. Returns ErrNotFound for an unknown id.
func (s *ContactStore) SetStatus(ctx context.Context, id uuid.UUID, status models.ContactStatus) (*models.ContactSubmission, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE contact_submissions SET status = $1 WHERE id = $2
		RETURNING `+contactColumns, status, id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set contact status: %w", err)
	}
	return c, nil
}

// Delete removes a submission. Returns ErrNotFound for an unknown id.
func (s *ContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact submission: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
