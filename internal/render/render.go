// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the admin console.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"folioadmin/internal/markdown"
	"folioadmin/internal/middleware"
	"folioadmin/internal/session"
)

//go:embed templates/admin/*.html templates/admin/partials/*.html
var adminFS embed.FS

// partialsGlob holds blocks shared by every page and swapped on their own
// by HTMX (flashes, image field, markdown preview, info item row).
const partialsGlob = "templates/admin/partials/*.html"

// PageData holds all data passed to admin templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active sidebar section ("dashboard", "projects")
	Session   *session.Data  // Current session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash is a notification shown above the page content.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Success and Error build the two common flashes.
func Success(msg string) Flash { return Flash{Type: "success", Message: msg} }
func Error(msg string) Flash   { return Flash{Type: "error", Message: msg} }

// Renderer holds one parsed template set per page.
type Renderer struct {
	templates map[string]*template.Template
	partials  *template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates render as full HTML documents without the base layout.
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// New parses every page template from the embedded filesystem, each paired
// with the base layout and the shared partials. devMode shows the dev badge
// and the enrollment link.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "nav-link active"
				}
				return "nav-link"
			},
			"isDev": func() bool {
				return devMode
			},
			// markdown renders a description; on failure the source is
			// shown escaped.
			"markdown": func(src string) template.HTML {
				out, err := markdown.ToHTML(src)
				if err != nil {
					slog.Warn("markdown render failed", "error", err)
					return template.HTML(template.HTMLEscapeString(src))
				}
				return out
			},
			"excerpt": markdown.Excerpt,
			"join":    strings.Join,
			"dict":    dict,
			"datetime": func(t time.Time) string {
				if t.IsZero() {
					return "unknown"
				}
				return t.Local().Format("2 Jan 2006 15:04")
			},
		},
	}

	entries, err := fs.ReadDir(adminFS, "templates/admin")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var (
			tmpl     *template.Template
			parseErr error
		)
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				adminFS, "templates/admin/"+name, partialsGlob,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				adminFS, "templates/admin/base.html", partialsGlob, "templates/admin/"+name,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}
		r.templates[tmplName] = tmpl
	}

	partials, err := template.New("partials").Funcs(r.funcMap).ParseFS(adminFS, partialsGlob)
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.partials = partials

	return r, nil
}

// Page renders a full admin page. HTMX requests for layout pages get only
// the "main" block (flashes plus content), which replaces #content. The
// CSRF token and session are taken from the request context.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	execName := "base.html"
	switch {
	case standaloneTemplates[name]:
		execName = name + ".html"
	case middleware.IsHTMX(r):
		execName = "main"
	}

	if data == nil {
		data = &PageData{}
	}
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	write(w, tmpl, execName, data)
}

// Partial renders one shared block on its own, for HTMX swaps smaller than
// the content area. data is passed to the block as is.
func (rn *Renderer) Partial(w http.ResponseWriter, name string, data any) {
	if rn.partials.Lookup(name) == nil {
		http.Error(w, fmt.Sprintf("partial %q not found", name), http.StatusInternalServerError)
		return
	}
	write(w, rn.partials, name, data)
}

// write renders into a buffer first so a template error never leaves a
// half page.
func write(w http.ResponseWriter, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template execute failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// dict builds a map from alternating keys and values, so a template can
// hand several values to a partial.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
