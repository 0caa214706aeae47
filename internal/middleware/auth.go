// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"folioadmin/internal/session"
	"folioadmin/internal/workspace"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"

	// WorkspaceKey is the context key for the session's workspace.
	WorkspaceKey contextKey = "workspace"
)

// Login paths used by the auth gates.
const (
	LoginPath    = "/admin/login"
	VerifyPath   = "/admin/2fa/verify"
	DashboardURL = "/admin"
)

// SessionGetter loads the session named by the request cookie.
type SessionGetter interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
}

// LoadObserver is told about every aggregate load started here.
type LoadObserver interface {
	ObserveWorkspaceLoad(err error)
}

// LoadSession puts the session, if any, into the request context. It does
// not enforce authentication. A Valkey failure is logged and the request
// continues as unauthenticated.
func LoadSession(store SessionGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session load failed", "error", err, "path", r.URL.Path)
			}
			if data != nil {
				r = r.WithContext(context.WithValue(r.Context(), SessionKey, data))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth sends requests without a session to the login page.
// Must be applied after LoadSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromCtx(r.Context()) == nil {
			Redirect(w, r, LoginPath)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require2FA sends sessions that have not passed the TOTP step to the
// verification page. With enabled false it is a no-op.
func Require2FA(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromCtx(r.Context())
			if sess != nil && !sess.TwoFADone {
				Redirect(w, r, VerifyPath)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoadWorkspace attaches the session's workspace to the context. A session
// whose workspace is missing or closed (after a restart, for instance) gets
// a fresh one and an aggregate load; a failed load is logged and the
// request goes on with whatever the workspace holds.
// Must be applied after RequireAuth.
func LoadWorkspace(reg *workspace.Registry, obs LoadObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromCtx(r.Context())
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}

			ws := reg.Open(sess.ID)
			if ws.State() == workspace.Unauthenticated {
				err := ws.Start(r.Context())
				if obs != nil {
					obs.ObserveWorkspaceLoad(err)
				}
				if err != nil {
					slog.Error("workspace load failed", "error", err)
				}
			}

			ctx := context.WithValue(r.Context(), WorkspaceKey, ws)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx returns the session loaded by LoadSession, or nil.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// WorkspaceFromCtx returns the workspace attached by LoadWorkspace, or nil.
func WorkspaceFromCtx(ctx context.Context) *workspace.Workspace {
	ws, _ := ctx.Value(WorkspaceKey).(*workspace.Workspace)
	return ws
}

// WithSession returns ctx carrying sess. Used by handlers right after login
// and by tests.
func WithSession(ctx context.Context, sess *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// WithWorkspace returns ctx carrying ws.
func WithWorkspace(ctx context.Context, ws *workspace.Workspace) context.Context {
	return context.WithValue(ctx, WorkspaceKey, ws)
}
