// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Counter counts hits per key in a time window. cache.WindowCounter is the
// Valkey-backed implementation.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter caps requests per client IP. Counts live in the Counter, so
// several console instances share one budget.
type RateLimiter struct {
	counter Counter
	limit   int64
	window  time.Duration
}

// NewRateLimiter allows limit requests per window for each client IP.
func NewRateLimiter(counter Counter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, limit: int64(limit), window: window}
}

// allow records a hit for key. When the counter is unreachable the
// request is let through and the failure logged.
func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	n, err := rl.counter.Hit(ctx, key, rl.window)
	if err != nil {
		slog.Warn("rate limiter unavailable, allowing request", "error", err)
		return true
	}
	return n <= rl.limit
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.Context(), clientIP(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
