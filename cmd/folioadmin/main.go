// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the portfolio admin console.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folioadmin/internal/auth"
	"folioadmin/internal/cache"
	"folioadmin/internal/config"
	"folioadmin/internal/handlers"
	"folioadmin/internal/metrics"
	"folioadmin/internal/middleware"
	"folioadmin/internal/render"
	"folioadmin/internal/restapi"
	"folioadmin/internal/router"
	"folioadmin/internal/seed"
	"folioadmin/internal/session"
	"folioadmin/internal/storage"
	"folioadmin/internal/store"
	"folioadmin/internal/workspace"
)

const (
	// loginLimit is the number of login and 2FA attempts allowed per client
	// IP in loginWindow.
	loginLimit  = 10
	loginWindow = 15 * time.Minute

	// backendTimeout bounds every call to the data API.
	backendTimeout = 15 * time.Second

	// sweepInterval is how often idle workspaces are looked for.
	sweepInterval = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	// Structured logger: JSON in production, text elsewhere.
	setupLogger(cfg.Env == "production")

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_api", cfg.DataAPIURL,
		"totp", cfg.HasTOTP(),
	)
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		slog.Warn("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set; nobody can log in (use folioctl hash)")
	}

	// Seed singleton rows in development (no-op if they already exist).
	if cfg.IsDev() {
		if err := seed.Singletons(seed.NewClient(cfg.DataAPIURL, cfg.DataAPIKey)); err != nil {
			slog.Warn("failed to seed singleton rows", "error", err)
		}
	}

	// Connect to Valkey (sessions + login rate limiting).
	valkeyClient, err := cache.ConnectValkey(context.Background(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	collector := metrics.New()

	// Data API client, resource accessors and the per-session workspaces.
	apiClient := restapi.New(cfg.DataAPIURL, cfg.DataAPIKey,
		restapi.WithHTTPClient(&http.Client{Timeout: backendTimeout}),
		restapi.WithObserver(collector),
	)
	portfolio := store.NewPortfolio(apiClient)
	registry := workspace.NewRegistry(workspace.NewLoader(portfolio))

	// Workspaces whose session expired in Valkey are never logged out;
	// sweep them once they have been idle for a session lifetime.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepWorkspaces(sweepCtx, registry, session.DefaultTTL)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Connect to S3-compatible object storage (optional; app works without it).
	var uploads handlers.Uploader
	if cfg.HasStorage() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		// A nil *storage.Client must not become a non-nil interface.
		if storageClient != nil {
			uploads = storageClient
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		}
	} else {
		slog.Warn("s3 storage not configured, image uploads disabled")
	}

	verifier := auth.NewVerifier(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.AdminTOTPSecret)

	adminHandlers := handlers.NewAdmin(renderer, portfolio, uploads, collector)
	authHandlers := handlers.NewAuth(renderer, sessionStore, verifier, registry, collector, cfg.IsDev())

	r := router.New(router.Deps{
		Sessions:     sessionStore,
		Registry:     registry,
		Verifier:     verifier,
		Metrics:      collector,
		LoginLimiter: middleware.NewRateLimiter(cache.NewWindowCounter(valkeyClient, "login"), loginLimit, loginWindow),
		Admin:        adminHandlers,
		Auth:         authHandlers,
		Secure:       secureCookies,
	})

	// WriteTimeout must cover an aggregate load (nine parallel backend
	// calls) plus an image upload.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func sweepWorkspaces(ctx context.Context, registry *workspace.Registry, maxIdle time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.Sweep(maxIdle); n > 0 {
				slog.Info("idle workspaces swept", "count", n, "open", registry.Len())
			}
		}
	}
}

func setupLogger(production bool) {
	var h slog.Handler
	if production {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}
