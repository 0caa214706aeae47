// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// The data service is a scripted httptest server; everything else is the
// real store, workspace and renderer.
package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"folioadmin/internal/middleware"
	"folioadmin/internal/render"
	"folioadmin/internal/restapi"
	"folioadmin/internal/session"
	"folioadmin/internal/store"
	"folioadmin/internal/workspace"
)

// backendCall is one request received by the fake data service.
type backendCall struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// backendReply is a scripted answer.
type backendReply struct {
	Status int
	Body   string
}

// fakeBackend answers "METHOD /table" keys from its script. Unscripted
// reads get an empty array and unscripted writes get 204.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []backendCall
	replies map[string]backendReply
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fb.mu.Lock()
	fb.calls = append(fb.calls, backendCall{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(body),
	})
	rep, ok := fb.replies[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()

	switch {
	case ok:
	case r.Method == http.MethodGet:
		rep = backendReply{Status: http.StatusOK, Body: "[]"}
	default:
		rep = backendReply{Status: http.StatusNoContent}
	}

	if rep.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(rep.Status)
	_, _ = io.WriteString(w, rep.Body)
}

// set scripts (or re-scripts) the reply for key.
func (fb *fakeBackend) set(key string, rep backendReply) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.replies[key] = rep
}

// writes returns the non-GET calls in arrival order.
func (fb *fakeBackend) writes() []backendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var out []backendCall
	for _, c := range fb.calls {
		if c.Method != http.MethodGet {
			out = append(out, c)
		}
	}
	return out
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	admin     *Admin
	backend   *fakeBackend
	portfolio *store.Portfolio
	renderer  *render.Renderer
	loader    *workspace.Loader
	ws        *workspace.Workspace
	sess      *session.Data
}

// newTestEnv starts a fake data service scripted with replies and runs
// the aggregate load once. The load result is not checked; tests that
// script failing reads rely on that.
func newTestEnv(t *testing.T, replies map[string]backendReply) *testEnv {
	t.Helper()

	if replies == nil {
		replies = map[string]backendReply{}
	}
	fb := &fakeBackend{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)

	renderer, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	portfolio := store.NewPortfolio(restapi.New(srv.URL, "test-key"))
	loader := workspace.NewLoader(portfolio)
	ws := workspace.New(loader)
	_ = ws.Start(context.Background())
	t.Cleanup(ws.Close)

	return &testEnv{
		admin:     NewAdmin(renderer, portfolio, nil, nil),
		backend:   fb,
		portfolio: portfolio,
		renderer:  renderer,
		loader:    loader,
		ws:        ws,
		sess:      &session.Data{ID: "sess-test", Email: "admin@folio.local", TwoFADone: true},
	}
}

// request builds an HTMX request carrying the env's session and workspace.
// id, when set, becomes the {id} route parameter.
func (e *testEnv) request(method, target string, form url.Values, id string) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	r.Header.Set("HX-Request", "true")

	ctx := middleware.WithSession(r.Context(), e.sess)
	ctx = middleware.WithWorkspace(ctx, e.ws)
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

// serve runs h against a request built by request.
func (e *testEnv) serve(h http.HandlerFunc, method, target string, form url.Values, id string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, e.request(method, target, form, id))
	return rec
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body missing %q\n%s", want, body)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Errorf("body should not contain %q", unwanted)
	}
}
