// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"folioadmin/internal/middleware"
	"folioadmin/internal/models"
	"folioadmin/internal/session"
	"folioadmin/internal/workspace"
)

// helperSession returns a session suitable for rendering admin templates.
func helperSession() *session.Data {
	return &session.Data{
		ID:        "sess-1",
		Email:     "admin@folio.local",
		TwoFADone: true,
		CreatedAt: time.Now(),
	}
}

// helperRequest builds a request whose context carries sess.
func helperRequest(method, target string, sess *session.Data) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if sess != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), sess))
	}
	return req
}

func newRenderer(t *testing.T, dev bool) *Renderer {
	t.Helper()
	rn, err := New(dev)
	if err != nil {
		t.Fatalf("New(%v): %v", dev, err)
	}
	return rn
}

func dashboardData() map[string]any {
	return map[string]any{
		"Counts":   workspace.Counts{Projects: 4, Skills: 11, Timeline: 3, Services: 2, Testimonials: 5, Contacts: 7},
		"Hero":     models.DefaultHero(),
		"LoadedAt": time.Time{},
	}
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{true, false} {
		rn := newRenderer(t, dev)

		pages := []string{
			"dashboard", "login", "2fa_setup", "2fa_verify",
			"hero", "about", "skills", "projects", "project_form",
			"timeline", "timeline_form", "socials", "social_form",
			"services", "service_form", "testimonials", "testimonial_form", "contact",
		}
		for _, name := range pages {
			if _, ok := rn.templates[name]; !ok {
				t.Errorf("dev=%v: expected template %q to be parsed", dev, name)
			}
		}
		if _, ok := rn.templates["base"]; ok {
			t.Error("base.html should not be registered as a separate template")
		}
		for _, name := range []string{"flashes", "image_field", "preview", "info_row"} {
			if rn.partials.Lookup(name) == nil {
				t.Errorf("expected partial %q", name)
			}
		}
	}
}

func TestDevBadge(t *testing.T) {
	for _, dev := range []bool{true, false} {
		rn := newRenderer(t, dev)
		w := httptest.NewRecorder()
		rn.Page(w, helperRequest(http.MethodGet, "/admin/login", nil), "login", &PageData{Title: "Sign In"})

		got := strings.Contains(w.Body.String(), "badge-dev")
		if got != dev {
			t.Errorf("dev=%v: badge shown = %v", dev, got)
		}
		if !strings.Contains(w.Body.String(), "/static/css/admin.css") {
			t.Error("expected the admin stylesheet")
		}
	}
}

func TestPageRendering(t *testing.T) {
	rn := newRenderer(t, false)
	sess := helperSession()
	w := httptest.NewRecorder()

	rn.Page(w, helperRequest(http.MethodGet, "/admin", sess), "dashboard", &PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data:    dashboardData(),
		Flashes: []Flash{Error("Could not load all data.")},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Folio Admin",
		`id="content"`,
		`id="flash"`,
		"Could not load all data.",
		"flash-error",
		">11<",
		"admin@folio.local",
		`class="nav-link active"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("full page missing %q", want)
		}
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestHTMXPartialRendering(t *testing.T) {
	rn := newRenderer(t, false)
	req := helperRequest(http.MethodGet, "/admin", helperSession())
	req.Header.Set("HX-Request", "true")

	w := httptest.NewRecorder()
	rn.Page(w, req, "dashboard", &PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data:    dashboardData(),
		Flashes: []Flash{Success("Project added.")},
	})

	body := w.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") || strings.Contains(body, "<head>") {
		t.Error("HTMX partial should not contain the layout")
	}
	if !strings.Contains(body, "Timeline events") {
		t.Error("HTMX partial should contain the dashboard content")
	}
	if !strings.Contains(body, "Project added.") {
		t.Error("HTMX partial should carry flashes")
	}
}

func TestStandaloneTemplates(t *testing.T) {
	rn := newRenderer(t, true)

	tests := []struct {
		name string
		want string
	}{
		{"login", "Sign In"},
		{"2fa_setup", "Two-Factor"},
		{"2fa_verify", "Two-Factor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := helperRequest(http.MethodGet, "/admin/"+tt.name, nil)
			// Standalone pages render whole even for HTMX requests.
			req.Header.Set("HX-Request", "true")
			w := httptest.NewRecorder()

			rn.Page(w, req, tt.name, &PageData{Title: tt.name, Data: map[string]any{}})

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			body := w.Body.String()
			if !strings.Contains(body, "<!DOCTYPE html>") {
				t.Error("expected a standalone document")
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("expected %q", tt.want)
			}
			if strings.Contains(body, `class="sidebar"`) {
				t.Error("standalone page should not contain the sidebar")
			}
		})
	}
}

func TestLoginShowsError(t *testing.T) {
	rn := newRenderer(t, false)
	w := httptest.NewRecorder()
	rn.Page(w, helperRequest(http.MethodPost, "/admin/login", nil), "login", &PageData{
		Title: "Sign In",
		Data:  map[string]any{"Error": "Invalid email or password.", "Email": "a@b.c"},
	})

	body := w.Body.String()
	if !strings.Contains(body, "Invalid email or password.") {
		t.Error("login error not shown")
	}
	if !strings.Contains(body, `value="a@b.c"`) {
		t.Error("email should be kept in the form")
	}
}

func TestSetupShowsQRCode(t *testing.T) {
	rn := newRenderer(t, true)
	w := httptest.NewRecorder()
	rn.Page(w, helperRequest(http.MethodGet, "/admin/2fa/setup", helperSession()), "2fa_setup", &PageData{
		Data: map[string]any{"QRCode": "iVBORw0KGgo=", "Secret": "JBSWY3DPEHPK3PXP"},
	})

	body := w.Body.String()
	if !strings.Contains(body, "data:image/png;base64,iVBORw0KGgo=") {
		t.Errorf("QR data URL missing: %s", body)
	}
	if !strings.Contains(body, "JBSWY3DPEHPK3PXP") {
		t.Error("manual key missing")
	}
}

func TestMissingTemplate(t *testing.T) {
	rn := newRenderer(t, true)
	w := httptest.NewRecorder()
	rn.Page(w, helperRequest(http.MethodGet, "/admin/x", nil), "nonexistent_template", &PageData{})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Error("error response should mention template not found")
	}
}

func TestCSRFTokenInjection(t *testing.T) {
	rn := newRenderer(t, false)

	var captured *http.Request
	h := middleware.CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	if captured == nil {
		t.Fatal("CSRF middleware did not call inner handler")
	}

	token := middleware.CSRFTokenFromCtx(captured.Context())
	if token == "" {
		t.Fatal("CSRF token not found in context")
	}

	data := &PageData{Title: "Sign In"}
	w := httptest.NewRecorder()
	rn.Page(w, captured, "login", data)

	if !strings.Contains(w.Body.String(), token) {
		t.Error("rendered output should contain the CSRF token")
	}
	if data.CSRFToken != token {
		t.Errorf("PageData.CSRFToken: got %q, want %q", data.CSRFToken, token)
	}
}

func TestSessionInjectionFromContext(t *testing.T) {
	rn := newRenderer(t, false)
	data := &PageData{Title: "Dashboard", Section: "dashboard", Data: dashboardData()}

	w := httptest.NewRecorder()
	rn.Page(w, helperRequest(http.MethodGet, "/admin", helperSession()), "dashboard", data)

	if data.Session == nil || data.Session.Email != "admin@folio.local" {
		t.Errorf("Session not injected: %+v", data.Session)
	}
	if !strings.Contains(w.Body.String(), "admin@folio.local") {
		t.Error("rendered output should contain the session email")
	}
}

func TestProjectFormModes(t *testing.T) {
	rn := newRenderer(t, false)
	req := helperRequest(http.MethodGet, "/admin/projects/new", helperSession())
	req.Header.Set("HX-Request", "true")

	w := httptest.NewRecorder()
	rn.Page(w, req, "project_form", &PageData{Data: map[string]any{
		"IsNew": true,
		"Item":  models.Project{Tags: []string{}},
	}})
	if !strings.Contains(w.Body.String(), `hx-post="/admin/projects"`) {
		t.Errorf("new form should post: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	rn.Page(w, req, "project_form", &PageData{Data: map[string]any{
		"IsNew":   false,
		"Uploads": true,
		"Item": models.Project{
			ID:          9,
			Title:       "Folio",
			Description: "**bold**",
			Tags:        []string{"go", "htmx"},
			ImageURL:    "https://cdn.example.com/a.png",
			IsFeatured:  true,
		},
	}})
	body := w.Body.String()
	for _, want := range []string{
		`hx-put="/admin/projects/9"`,
		`value="go, htmx"`,
		`type="file"`,
		`src="https://cdn.example.com/a.png"`,
		"checked",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("edit form missing %q", want)
		}
	}
}

func TestTemplateEscapesContent(t *testing.T) {
	rn := newRenderer(t, false)
	req := helperRequest(http.MethodGet, "/admin/socials", helperSession())
	req.Header.Set("HX-Request", "true")

	w := httptest.NewRecorder()
	rn.Page(w, req, "socials", &PageData{Data: map[string]any{
		"Links": []models.SocialLink{{ID: 1, Platform: "<script>x</script>", URL: "javascript:alert(1)"}},
	}})

	body := w.Body.String()
	if strings.Contains(body, "<script>x</script>") {
		t.Error("platform was not escaped")
	}
	if strings.Contains(body, `href="javascript:`) {
		t.Error("unsafe URL was not filtered")
	}
}

func TestPartial(t *testing.T) {
	rn := newRenderer(t, false)

	w := httptest.NewRecorder()
	rn.Partial(w, "preview", "# Hello\n\nSome *text*.")
	body := w.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "<em>text</em>") {
		t.Errorf("preview = %s", body)
	}

	w = httptest.NewRecorder()
	rn.Partial(w, "info_row", models.InfoItem{ID: "abc", Label: "Location"})
	if !strings.Contains(w.Body.String(), `value="abc"`) || !strings.Contains(w.Body.String(), `value="Location"`) {
		t.Errorf("info_row = %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	rn.Partial(w, "no_such_partial", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("missing partial: got %d", w.Code)
	}
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	if err != nil || m["a"] != 1 || m["b"] != "two" {
		t.Errorf("dict = %v, %v", m, err)
	}
	if _, err := dict("a"); err == nil {
		t.Error("expected error for odd arguments")
	}
	if _, err := dict(1, 2); err == nil {
		t.Error("expected error for non-string key")
	}
}
