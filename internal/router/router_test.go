// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"folioadmin/internal/auth"
	"folioadmin/internal/handlers"
	"folioadmin/internal/metrics"
	"folioadmin/internal/middleware"
	"folioadmin/internal/render"
	"folioadmin/internal/restapi"
	"folioadmin/internal/session"
	"folioadmin/internal/store"
	"folioadmin/internal/workspace"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// memSessions is an in-memory session store keyed by the session cookie.
type memSessions struct {
	mu    sync.Mutex
	items map[string]*session.Data
	next  int
}

func (m *memSessions) Get(_ context.Context, r *http.Request) (*session.Data, error) {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[c.Value]
	if !ok {
		return nil, nil
	}
	cp := *data
	return &cp, nil
}

func (m *memSessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	data.ID = "sess-" + strconv.Itoa(m.next)
	cp := *data
	m.items[data.ID] = &cp
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: data.ID, Path: "/"})
	return data.ID, nil
}

func (m *memSessions) Update(_ context.Context, data *session.Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *data
	m.items[data.ID] = &cp
	return nil
}

func (m *memSessions) Destroy(_ context.Context, _ http.ResponseWriter, r *http.Request) (string, error) {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return "", nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, c.Value)
	return c.Value, nil
}

type routerEnv struct {
	handler  http.Handler
	sessions *memSessions
	registry *workspace.Registry
}

func newRouterEnv(t *testing.T, totpSecret string) *routerEnv {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet && r.URL.Path == "/projects" {
			_, _ = w.Write([]byte(`[{"id":1,"title":"Routed project","tags":[]}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(backend.Close)

	renderer, err := render.New(false)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	collector := metrics.New()
	portfolio := store.NewPortfolio(restapi.New(backend.URL, "key", restapi.WithObserver(collector)))
	registry := workspace.NewRegistry(workspace.NewLoader(portfolio))
	verifier := auth.NewVerifier("admin@folio.local", string(hash), totpSecret)
	sessions := &memSessions{items: map[string]*session.Data{}}

	h := New(Deps{
		Sessions: sessions,
		Registry: registry,
		Verifier: verifier,
		Metrics:  collector,
		Admin:    handlers.NewAdmin(renderer, portfolio, nil, collector),
		Auth:     handlers.NewAuth(renderer, sessions, verifier, registry, collector, false),
	})
	return &routerEnv{handler: h, sessions: sessions, registry: registry}
}

// login stores a session directly and returns its cookie.
func (e *routerEnv) login(twoFADone bool) *http.Cookie {
	e.sessions.mu.Lock()
	defer e.sessions.mu.Unlock()
	e.sessions.items["sess-fixed"] = &session.Data{ID: "sess-fixed", Email: "admin@folio.local", TwoFADone: twoFADone}
	return &http.Cookie{Name: session.CookieName, Value: "sess-fixed"}
}

func (e *routerEnv) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, r)
	return rec
}

func TestPublicRoutes(t *testing.T) {
	env := newRouterEnv(t, "")

	tests := []struct {
		path     string
		status   int
		location string
		contains string
	}{
		{"/health", http.StatusOK, "", `"ok"`},
		{"/", http.StatusSeeOther, "/admin", ""},
		{"/admin", http.StatusSeeOther, "/admin/login", ""},
		{"/admin/projects", http.StatusSeeOther, "/admin/login", ""},
		{"/admin/login", http.StatusOK, "", `name="password"`},
		{"/static/css/admin.css", http.StatusOK, "", ".sidebar"},
		{"/metrics", http.StatusOK, "", "go_goroutines"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.do(httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.location != "" && rec.Header().Get("Location") != tt.location {
				t.Errorf("Location = %q, want %q", rec.Header().Get("Location"), tt.location)
			}
			if tt.contains != "" && !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	env := newRouterEnv(t, "")

	rec := env.do(httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	if rec.Header().Get("X-Frame-Options") == "" {
		t.Error("missing X-Frame-Options")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy")
	}
}

func TestPostWithoutCSRFIsRejected(t *testing.T) {
	env := newRouterEnv(t, "")

	form := url.Values{"email": {"admin@folio.local"}, "password": {"pw"}}
	r := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.do(r)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	env := newRouterEnv(t, "")

	// The login page issues the CSRF cookie.
	rec := env.do(httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			csrf = c
		}
	}
	if csrf == nil {
		t.Fatal("no CSRF cookie")
	}

	form := url.Values{"email": {"admin@folio.local"}, "password": {"pw"}, middleware.CSRFFormField: {csrf.Value}}
	r := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(csrf)
	rec = env.do(r)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("login: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	var sess *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			sess = c
		}
	}
	if sess == nil {
		t.Fatal("no session cookie")
	}
	if env.registry.Len() != 1 {
		t.Errorf("workspaces = %d, want 1", env.registry.Len())
	}

	r = httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	r.AddCookie(sess)
	rec = env.do(r)
	if rec.Code != http.StatusOK {
		t.Fatalf("projects: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Routed project") {
		t.Error("projects page should list the backend rows")
	}
}

func TestWorkspaceOpenedOnDemand(t *testing.T) {
	env := newRouterEnv(t, "")
	cookie := env.login(true)

	r := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	r.AddCookie(cookie)
	r.Header.Set("HX-Request", "true")
	rec := env.do(r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Routed project") {
		t.Error("missing project row")
	}
	if strings.Contains(body, "<html") {
		t.Error("HTMX request should get the content fragment only")
	}
	if _, ok := env.registry.Get("sess-fixed"); !ok {
		t.Error("workspace should have been opened for the session")
	}
}

func TestSecondFactorGate(t *testing.T) {
	env := newRouterEnv(t, "JBSWY3DPEHPK3PXP")
	cookie := env.login(false)

	r := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	r.AddCookie(cookie)
	rec := env.do(r)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != middleware.VerifyPath {
		t.Errorf("got %d %q, want redirect to verify", rec.Code, rec.Header().Get("Location"))
	}

	r = httptest.NewRequest(http.MethodGet, "/admin/2fa/verify", nil)
	r.AddCookie(cookie)
	rec = env.do(r)
	if rec.Code != http.StatusOK {
		t.Errorf("verify page: %d", rec.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/admin/2fa/setup", nil)
	r.AddCookie(cookie)
	rec = env.do(r)
	if rec.Code != http.StatusNotFound {
		t.Errorf("setup page outside development: %d, want 404", rec.Code)
	}
}

func TestCollectionRoutes(t *testing.T) {
	env := newRouterEnv(t, "")

	var routes []string
	_ = chi.Walk(env.handler.(chi.Router), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	joined := strings.Join(routes, "\n")

	for _, base := range []string{"/admin/projects", "/admin/timeline", "/admin/socials", "/admin/services", "/admin/testimonials"} {
		for _, want := range []string{
			"GET " + base + "/",
			"GET " + base + "/new",
			"POST " + base + "/",
			"GET " + base + "/{id}",
			"PUT " + base + "/{id}",
			"DELETE " + base + "/{id}",
		} {
			if !strings.Contains(joined, want+"\n") && !strings.HasSuffix(joined, want) {
				t.Errorf("missing route %s", want)
			}
		}
	}
	for _, want := range []string{
		"POST /admin/skills/{id}/toggle",
		"DELETE /admin/skills/categories/{id}",
		"DELETE /admin/contact/{id}",
		"POST /admin/media",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing route %s", want)
		}
	}
}
