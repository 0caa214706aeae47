// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer catches panics in downstream handlers, logs the stack trace,
// and answers 500 instead of crashing the server. HTMX requests get a
// fragment aimed at the flash area so the page stays usable.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)

			if IsHTMX(r) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("HX-Retarget", "#flash")
				w.Header().Set("HX-Reswap", "innerHTML")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`<div class="flash flash-error">Something went wrong. Please try again.</div>`))
				return
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
