// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"folioadmin/internal/restapi"
)

// call is one request received by the fake backend.
type call struct {
	Method string
	URI    string
	Prefer string
	Body   string
}

// reply is what the fake backend answers for a given "METHOD URI" key.
type reply struct {
	Status int
	Body   string
}

// fakeBackend is a scripted PostgREST stand-in. Unscripted requests get
// 204 No Content.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []call
	replies map[string]reply
}

func newFakeBackend(t *testing.T, replies map[string]reply) (*fakeBackend, *restapi.Client) {
	t.Helper()
	fb := &fakeBackend{replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, restapi.New(srv.URL, "test-key")
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	fb.mu.Lock()
	fb.calls = append(fb.calls, call{
		Method: r.Method,
		URI:    r.URL.RequestURI(),
		Prefer: r.Header.Get("Prefer"),
		Body:   string(body),
	})
	rep, ok := fb.replies[r.Method+" "+r.URL.RequestURI()]
	fb.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if rep.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(rep.Status)
	_, _ = io.WriteString(w, rep.Body)
}

func (fb *fakeBackend) Calls() []call {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]call(nil), fb.calls...)
}
