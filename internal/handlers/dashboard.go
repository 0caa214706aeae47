// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"folioadmin/internal/middleware"
	"folioadmin/internal/render"
)

// Dashboard renders the content counts.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	a.renderDashboard(w, r, nil)
}

func (a *Admin) renderDashboard(w http.ResponseWriter, r *http.Request, flashes []render.Flash) {
	snap, warn := a.snapshot(r)

	data := map[string]any{
		"Counts": snap.Counts(),
		"Hero":   snap.Hero,
	}
	if ws := middleware.WorkspaceFromCtx(r.Context()); ws != nil {
		data["LoadedAt"] = ws.LoadedAt()
	}

	a.page(w, r, "dashboard", "Dashboard", "dashboard", data, append(warn, flashes...))
}

// Reload runs the aggregate load again for the session.
func (a *Admin) Reload(w http.ResponseWriter, r *http.Request) {
	ws := middleware.WorkspaceFromCtx(r.Context())
	if ws == nil {
		middleware.Redirect(w, r, middleware.LoginPath)
		return
	}

	err := ws.Start(r.Context())
	if a.loads != nil {
		a.loads.ObserveWorkspaceLoad(err)
	}
	pushURL(w, r, middleware.DashboardURL)
	if err != nil {
		slog.Error("workspace reload failed", "error", err)
		var flashes []render.Flash
		if _, ok := ws.Snapshot(); ok {
			flashes = append(flashes, render.Error(msgNotLoaded+" Showing the content loaded earlier."))
		}
		a.renderDashboard(w, r, flashes)
		return
	}
	a.renderDashboard(w, r, []render.Flash{render.Success("All content reloaded.")})
}

// Preview renders the markdown of the description field.
func (a *Admin) Preview(w http.ResponseWriter, r *http.Request) {
	a.renderer.Partial(w, "preview", r.FormValue("description"))
}
