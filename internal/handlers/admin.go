// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Folio admin console.
// Handlers are grouped by concern (auth, one screen per content kind,
// media) and receive their dependencies through the handler struct.
//
// Screens read from the session's workspace snapshot and never from the
// backend directly. Every mutation goes to the backend first and is then
// followed by a refresh of the affected kind, so what the screen shows is
// always what the backend holds.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"folioadmin/internal/middleware"
	"folioadmin/internal/models"
	"folioadmin/internal/render"
	"folioadmin/internal/restapi"
	"folioadmin/internal/store"
	"folioadmin/internal/workspace"
)

// Uploader stores images for the image URL fields. *storage.Client
// implements it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// Admin groups the content screens and their dependencies.
type Admin struct {
	renderer *render.Renderer
	content  *store.Portfolio
	uploads  Uploader
	loads    middleware.LoadObserver

	Projects     *Collection[models.Project]
	Timeline     *Collection[models.TimelineEvent]
	Socials      *Collection[models.SocialLink]
	Services     *Collection[models.Service]
	Testimonials *Collection[models.Testimonial]
}

// NewAdmin creates the admin handler group. uploads may be nil when object
// storage is not configured; loads may be nil.
func NewAdmin(renderer *render.Renderer, content *store.Portfolio, uploads Uploader, loads middleware.LoadObserver) *Admin {
	a := &Admin{
		renderer: renderer,
		content:  content,
		uploads:  uploads,
		loads:    loads,
	}
	a.Projects = newProjects(a)
	a.Timeline = newTimeline(a)
	a.Socials = newSocials(a)
	a.Services = newServices(a)
	a.Testimonials = newTestimonials(a)
	return a
}

// msgNotLoaded is shown while the session has no complete snapshot.
const msgNotLoaded = "Could not load all data."

// snapshot returns the session's content. Until a full load has succeeded
// it returns an empty snapshot with the singleton defaults and a warning.
func (a *Admin) snapshot(r *http.Request) (workspace.Snapshot, []render.Flash) {
	if ws := middleware.WorkspaceFromCtx(r.Context()); ws != nil {
		if snap, ok := ws.Snapshot(); ok {
			return snap, nil
		}
	}
	empty := workspace.Snapshot{Hero: models.DefaultHero(), About: models.DefaultAbout()}
	return empty, []render.Flash{{Type: "warning", Message: msgNotLoaded}}
}

// refresh refetches kind after a successful mutation and returns the
// flashes to show: done, plus a warning when the refetch failed.
func (a *Admin) refresh(r *http.Request, kind workspace.Kind, done string) []render.Flash {
	flashes := []render.Flash{render.Success(done)}

	ws := middleware.WorkspaceFromCtx(r.Context())
	if ws == nil {
		return flashes
	}
	if err := ws.Refresh(r.Context(), kind); err != nil {
		slog.Error("workspace refresh failed", "kind", kind, "error", err)
		flashes = append(flashes, render.Flash{
			Type:    "warning",
			Message: "The change was saved, but the list could not be reloaded.",
		})
	}
	return flashes
}

// page renders a layout page with the snapshot warning, if any, ahead of
// the given flashes.
func (a *Admin) page(w http.ResponseWriter, r *http.Request, name, title, section string, data map[string]any, flashes []render.Flash) {
	a.renderer.Page(w, r, name, &render.PageData{
		Title:   title,
		Section: section,
		Data:    data,
		Flashes: flashes,
	})
}

// failureMessage turns a backend error into a notification for action,
// for example "Could not add the project".
func failureMessage(action string, err error) string {
	var apiErr *restapi.APIError
	switch {
	case errors.As(err, &apiErr):
		switch {
		case apiErr.IsConflict():
			return action + ": it conflicts with existing data."
		case apiErr.IsNotFound():
			return action + ": it no longer exists."
		case apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden:
			return action + ": the data service refused the request."
		case apiErr.Message != "":
			return fmt.Sprintf("%s: %s", action, apiErr.Message)
		default:
			return fmt.Sprintf("%s: the data service answered %d %s.", action, apiErr.Status, apiErr.StatusText)
		}
	case errors.Is(err, context.DeadlineExceeded):
		return action + ": the data service timed out."
	default:
		return action + ": the data service is unreachable."
	}
}

// parseID reads the positive integer {id} URL parameter.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// formValue returns a trimmed form field.
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formBool reads a checkbox or a hidden "true"/"false" field.
func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(formValue(r, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// splitTags parses a comma-separated tag list, dropping blanks and
// duplicates while keeping order.
func splitTags(s string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// pushURL tells HTMX which address the swapped content belongs to, so a
// list re-rendered after a form post does not keep the form's URL.
func pushURL(w http.ResponseWriter, r *http.Request, url string) {
	if middleware.IsHTMX(r) {
		w.Header().Set("HX-Push-Url", url)
	}
}
