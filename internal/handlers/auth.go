// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"physiocms/internal/middleware"
	"physiocms/internal/models"
	"physiocms/internal/session"
	"physiocms/internal/store"
)

const (
	totpIssuer = "PhysioCMS"

	msgBadCredentials = "E-Mail oder Passwort ist falsch."
	msgBadCode        = "Ungültiger Code. Bitte erneut versuchen."
	msgNoSession      = "Nicht angemeldet."
)

// Auth groups the login and two-factor endpoints under /api/auth.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{sessions: sessions, userStore: userStore}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Next models.LoginStep `json:"next"`
}

// Login checks the credentials and opens a session that still needs the
// second factor.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := a.userStore.FindByEmail(r.Context(), strings.TrimSpace(in.Email))
	if err != nil {
		serverError(w, r, "login lookup failed", err)
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, in.Password) {
		writeError(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
	if err != nil {
		serverError(w, r, "session create failed", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Next: user.NextLoginStep()})
}

type setupResponse struct {
	Secret string `json:"secret"`
	QRCode string `json:"qr_code"`
}

// TwoFASetup generates a fresh TOTP secret and returns it with a QR code
// as a base64 PNG. Users that already enrolled must verify instead.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, msgNoSession)
		return
	}

	user, err := a.userStore.FindByID(r.Context(), sess.UserID)
	if err != nil {
		serverError(w, r, "user lookup for 2fa failed", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, msgNoSession)
		return
	}
	if user.Enrolled() {
		writeError(w, http.StatusConflict, "Zwei-Faktor-Authentifizierung ist bereits eingerichtet.")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		serverError(w, r, "totp generate failed", err)
		return
	}
	if err := a.userStore.SetTOTPSecret(r.Context(), user.ID, key.Secret()); err != nil {
		serverError(w, r, "save totp secret failed", err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		serverError(w, r, "qr code generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, setupResponse{
		Secret: key.Secret(),
		QRCode: base64.StdEncoding.EncodeToString(png),
	})
}

type verifyInput struct {
	Code string `json:"code"`
}

// TwoFAVerify validates a TOTP code and completes the session. The first
// successful code after setup enables TOTP for the user.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, msgNoSession)
		return
	}
	var in verifyInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := a.userStore.FindByID(r.Context(), sess.UserID)
	if err != nil {
		serverError(w, r, "user lookup for 2fa failed", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, msgNoSession)
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusConflict, "Zwei-Faktor-Authentifizierung ist noch nicht eingerichtet.")
		return
	}
	if !totp.Validate(strings.TrimSpace(in.Code), *user.TOTPSecret) {
		writeError(w, http.StatusUnauthorized, msgBadCode)
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(r.Context(), user.ID); err != nil {
			serverError(w, r, "enable totp failed", err)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		serverError(w, r, "session update failed", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Session returns the identity of the current session, including ones
// still waiting for the second factor; two_fa_done tells them apart.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, msgNoSession)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		serverError(w, r, "session destroy failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
