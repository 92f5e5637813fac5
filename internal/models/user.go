// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a back-office permission level. Admins may additionally purge
// caches; everything else is open to editors.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// LoginStep names what the client has to do after the password check.
type LoginStep string

const (
	StepTwoFASetup  LoginStep = "2fa_setup"
	StepTwoFAVerify LoginStep = "2fa_verify"
)

// User is a back-office account. The password hash and the TOTP secret
// never leave the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Enrolled reports whether the user has a confirmed TOTP secret.
func (u *User) Enrolled() bool {
	return u.TOTPEnabled && u.TOTPSecret != nil
}

// NextLoginStep returns the second factor step for this user.
func (u *User) NextLoginStep() LoginStep {
	if u.Enrolled() {
		return StepTwoFAVerify
	}
	return StepTwoFASetup
}
