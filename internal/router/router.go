// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// admin console. Everything under /admin is CSRF-protected; the content
// screens additionally require a completed login and a workspace.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folioadmin/internal/auth"
	"folioadmin/internal/handlers"
	"folioadmin/internal/metrics"
	"folioadmin/internal/middleware"
	"folioadmin/internal/workspace"
	"folioadmin/web"
)

// Deps are the collaborators the router wires together.
type Deps struct {
	Sessions middleware.SessionGetter
	Registry *workspace.Registry
	Verifier *auth.Verifier
	Metrics  *metrics.Collector

	// LoginLimiter throttles login attempts. Optional.
	LoginLimiter *middleware.RateLimiter

	Admin *handlers.Admin
	Auth  *handlers.Auth

	// Secure marks cookies Secure and enables HSTS.
	Secure bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.SecureHeaders(d.Secure))
	r.Use(middleware.LoadSession(d.Sessions))

	// Health check and metrics: no auth, no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", d.Metrics.Handler())

	static, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, middleware.DashboardURL, http.StatusSeeOther)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF(d.Secure))

		// Auth pages, reachable without a session.
		r.Get("/login", d.Auth.LoginPage)
		r.With(limit(d.LoginLimiter)).Post("/login", d.Auth.LoginSubmit)
		r.Post("/logout", d.Auth.Logout)

		// 2FA: requires a session but not a completed second factor.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", d.Auth.TwoFASetupPage)
			r.Get("/2fa/verify", d.Auth.TwoFAVerifyPage)
			r.With(limit(d.LoginLimiter)).Post("/2fa/verify", d.Auth.TwoFAVerifySubmit)
		})

		// Content screens.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA(d.Verifier.TOTPEnabled()))
			r.Use(middleware.LoadWorkspace(d.Registry, d.Metrics))

			admin := d.Admin

			r.Get("/", admin.Dashboard)
			r.Post("/reload", admin.Reload)
			r.Post("/preview", admin.Preview)
			r.Post("/media", admin.MediaUpload)

			r.Get("/hero", admin.HeroPage)
			r.Post("/hero", admin.HeroUpdate)

			r.Get("/about", admin.AboutPage)
			r.Post("/about", admin.AboutUpdate)
			r.Get("/about/info-item", admin.InfoItemRow)

			r.Route("/skills", func(r chi.Router) {
				r.Get("/", admin.SkillsPage)
				r.Post("/", admin.SkillCreate)
				r.Put("/{id}", admin.SkillUpdate)
				r.Post("/{id}/toggle", admin.SkillToggle)
				r.Delete("/{id}", admin.SkillDelete)

				r.Post("/categories", admin.CategoryCreate)
				r.Put("/categories/{id}", admin.CategoryUpdate)
				r.Delete("/categories/{id}", admin.CategoryDelete)
			})

			r.Route("/projects", collectionRoutes(admin.Projects))
			r.Route("/timeline", collectionRoutes(admin.Timeline))
			r.Route("/socials", collectionRoutes(admin.Socials))
			r.Route("/services", collectionRoutes(admin.Services))
			r.Route("/testimonials", collectionRoutes(admin.Testimonials))

			r.Route("/contact", func(r chi.Router) {
				r.Get("/", admin.ContactList)
				r.Delete("/{id}", admin.ContactDelete)
			})
		})
	})

	return r
}

// crud is the handler set of one collection screen.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	New(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Edit(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func collectionRoutes(c crud) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", c.List)
		r.Get("/new", c.New)
		r.Post("/", c.Create)
		r.Get("/{id}", c.Edit)
		r.Put("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	}
}

// limit applies rl when it is configured.
func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
