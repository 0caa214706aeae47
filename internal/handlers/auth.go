// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"folioadmin/internal/auth"
	"folioadmin/internal/middleware"
	"folioadmin/internal/render"
	"folioadmin/internal/session"
	"folioadmin/internal/workspace"
)

// Sessions is the part of the session store the auth handlers use.
// *session.Store implements it.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Update(ctx context.Context, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error)
}

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer *render.Renderer
	sessions Sessions
	verifier *auth.Verifier
	registry *workspace.Registry
	loads    middleware.LoadObserver
	devMode  bool
}

// NewAuth creates a new Auth handler group. loads may be nil.
func NewAuth(renderer *render.Renderer, sessions Sessions, verifier *auth.Verifier, registry *workspace.Registry, loads middleware.LoadObserver, devMode bool) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		verifier: verifier,
		registry: registry,
		loads:    loads,
		devMode:  devMode,
	}
}

// authenticated reports whether sess has passed every configured factor.
func (a *Auth) authenticated(sess *session.Data) bool {
	return sess != nil && (sess.TwoFADone || !a.verifier.TOTPEnabled())
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if a.authenticated(middleware.SessionFromCtx(r.Context())) {
		http.Redirect(w, r, middleware.DashboardURL, http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if !a.verifier.CheckPassword(email, password) {
		slog.Warn("login failed", "email", email)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign In",
			Data: map[string]any{
				"Error": "Invalid email or password.",
				"Email": email,
			},
		})
		return
	}

	// A cookie from an earlier login is replaced below; its workspace goes
	// with it.
	if old, err := r.Cookie(session.CookieName); err == nil && old.Value != "" {
		a.registry.Drop(old.Value)
	}

	// TwoFADone starts false when a second factor is configured.
	sess := &session.Data{
		Email:     a.verifier.Email(),
		TwoFADone: !a.verifier.TOTPEnabled(),
	}
	if _, err := a.sessions.Create(r.Context(), w, sess); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !sess.TwoFADone {
		http.Redirect(w, r, middleware.VerifyPath, http.StatusSeeOther)
		return
	}

	slog.Info("login", "email", sess.Email)
	a.openWorkspace(r.Context(), sess.ID)
	http.Redirect(w, r, middleware.DashboardURL, http.StatusSeeOther)
}

// TwoFASetupPage shows the configured TOTP secret as a QR code so it can be
// added to an authenticator app. Only available in development.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	if !a.devMode {
		http.NotFound(w, r)
		return
	}

	data := map[string]any{}
	enrollment, err := a.verifier.Enrollment()
	switch {
	case errors.Is(err, auth.ErrNoTOTP):
		data["Error"] = "No TOTP secret is configured. Run folioctl totp and set ADMIN_TOTP_SECRET."
	case err != nil:
		slog.Error("totp enrollment failed", "error", err)
		data["Error"] = "Could not render the TOTP secret."
	default:
		data["QRCode"] = enrollment.QRCode
		data["Secret"] = enrollment.Secret
	}

	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Set Up Two-Factor Authentication",
		Data:  data,
	})
}

// TwoFAVerifyPage renders the 2FA code entry form.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	if a.authenticated(middleware.SessionFromCtx(r.Context())) {
		http.Redirect(w, r, middleware.DashboardURL, http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Two-Factor Authentication",
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}

	code := strings.ReplaceAll(strings.TrimSpace(r.FormValue("code")), " ", "")
	if !a.verifier.ValidateCode(code) {
		slog.Warn("2fa code rejected", "email", sess.Email)
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title: "Two-Factor Authentication",
			Data:  map[string]any{"Error": "Invalid code. Please try again."},
		})
		return
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("login", "email", sess.Email)
	a.openWorkspace(r.Context(), sess.ID)
	http.Redirect(w, r, middleware.DashboardURL, http.StatusSeeOther)
}

// Logout destroys the session and its workspace.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	id, err := a.sessions.Destroy(r.Context(), w, r)
	if err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	if id != "" {
		a.registry.Drop(id)
	}
	middleware.Redirect(w, r, middleware.LoginPath)
}

// openWorkspace creates the session's workspace and runs the aggregate
// load. A failed load still lets the login through; the screens show what
// could not be loaded.
func (a *Auth) openWorkspace(ctx context.Context, id string) {
	ws := a.registry.Open(id)
	err := ws.Start(ctx)
	if a.loads != nil {
		a.loads.ObserveWorkspaceLoad(err)
	}
	if err != nil {
		slog.Error("workspace load failed", "error", err)
	}
}
