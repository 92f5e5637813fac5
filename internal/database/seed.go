// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// seedAdminEmail is the development login created by Seed.
const seedAdminEmail = "admin@physio.local"

// starterPages are inserted once per brand so a fresh install renders
// something at / and /konzept.
var starterPages = []struct {
	brand   string
	title   string
	heading string
	text    string
}{
	{"physiotherapy", "Startseite", "Willkommen in unserer Praxis", "Physiotherapie, Manuelle Therapie und Lymphdrainage in Ihrer Nähe."},
	{"physio-konzept", "Startseite", "Leistung neu gedacht", "Athletiktraining, Leistungsdiagnostik und Return-to-Sport."},
}

// starterPresets give each brand an active theme on a fresh install.
var starterPresets = []struct {
	brand  string
	name   string
	tokens string
}{
	{"physiotherapy", "Standard", `{"--color-primary":"#0f766e","--color-accent":"#f59e0b","--color-text":"#1f2937","--color-background":"#ffffff","--font-heading":"Poppins, sans-serif","--font-body":"Inter, sans-serif"}`},
	{"physio-konzept", "Standard", `{"--color-primary":"#111827","--color-accent":"#e11d48","--color-text":"#111827","--color-background":"#f9fafb","--font-heading":"Oswald, sans-serif","--font-body":"Inter, sans-serif"}`},
}

// Seed populates the database with initial development data: an admin
// user (2FA not yet enrolled), a starter home page and an active theme
// preset per brand. It is a no-op once any user exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, seedAdminEmail, string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	for _, p := range starterPages {
		var pageID string
		err := tx.QueryRow(`
			INSERT INTO pages (title, slug, brand, status, published_at)
			VALUES ($1, 'home', $2, 'published', NOW())
			ON CONFLICT (slug, brand) DO NOTHING
			RETURNING id
		`, p.title, p.brand).Scan(&pageID)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed page %s: %w", p.brand, err)
		}

		blocks := []struct {
			typ   string
			props string
		}{
			{"hero", fmt.Sprintf(`{"heading":%q,"subheading":%q}`, p.heading, p.text)},
			{"cta", `{"heading":"Termin vereinbaren","button":{"label":"Kontakt","href":"#kontakt"}}`},
		}
		for i, b := range blocks {
			if _, err := tx.Exec(`
				INSERT INTO blocks (page_id, type, sort, props) VALUES ($1, $2, $3, $4)
			`, pageID, b.typ, i, b.props); err != nil {
				return fmt.Errorf("seed block %s: %w", b.typ, err)
			}
		}
	}

	for _, tp := range starterPresets {
		var presetID string
		if err := tx.QueryRow(`
			INSERT INTO theme_presets (brand, name, tokens) VALUES ($1, $2, $3)
			RETURNING id
		`, tp.brand, tp.name, tp.tokens).Scan(&presetID); err != nil {
			return fmt.Errorf("seed preset %s: %w", tp.brand, err)
		}
		if _, err := tx.Exec(`
			UPDATE brand_settings SET active_preset_id = $1, updated_at = NOW() WHERE brand = $2
		`, presetID, tp.brand); err != nil {
			return fmt.Errorf("seed activate preset %s: %w", tp.brand, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", seedAdminEmail,
		"password", "admin",
	)

	return nil
}
