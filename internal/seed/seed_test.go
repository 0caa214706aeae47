// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seed

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	method string
	path   string
	query  string
	prefer string
	apikey string
	body   string
}

// fakeDataAPI answers reads from existing (table -> JSON array) and
// accepts every write.
func fakeDataAPI(t *testing.T, existing map[string]string) (*httptest.Server, func() []seenRequest) {
	t.Helper()
	var mu sync.Mutex
	var seen []seenRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, seenRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			prefer: r.Header.Get("Prefer"),
			apikey: r.Header.Get("apikey"),
			body:   string(body),
		})
		mu.Unlock()

		if r.Method == http.MethodGet {
			rows, ok := existing[r.URL.Path]
			if !ok {
				rows = "[]"
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, rows)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []seenRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]seenRequest(nil), seen...)
	}
}

func TestSingletonsSeedsEmptyTables(t *testing.T) {
	srv, seen := fakeDataAPI(t, nil)

	require.NoError(t, Singletons(NewClient(srv.URL, "anon-key")))

	var writes []seenRequest
	for _, r := range seen() {
		assert.Equal(t, "anon-key", r.apikey)
		if r.method == http.MethodPost {
			writes = append(writes, r)
		}
	}
	require.Len(t, writes, 2)

	assert.Equal(t, "/hero", writes[0].path)
	assert.Equal(t, "/about", writes[1].path)
	for _, w := range writes {
		assert.Equal(t, "on_conflict=id", w.query)
		assert.Equal(t, "resolution=merge-duplicates,return=minimal", w.prefer)

		var row map[string]any
		require.NoError(t, json.Unmarshal([]byte(w.body), &row))
		assert.EqualValues(t, 1, row["id"])
	}
	assert.Contains(t, writes[0].body, `"name":"Your Name"`)
	assert.Contains(t, writes[1].body, `"info_items":[]`)
}

func TestSingletonsKeepsExistingRows(t *testing.T) {
	srv, seen := fakeDataAPI(t, map[string]string{
		"/hero":  `[{"id":1}]`,
		"/about": `[{"id":1}]`,
	})

	require.NoError(t, Singletons(NewClient(srv.URL, "")))
	require.NoError(t, Singletons(NewClient(srv.URL, "")))

	for _, r := range seen() {
		assert.Equal(t, http.MethodGet, r.method, "existing rows must not be rewritten")
		assert.Contains(t, r.query, "id=eq.1")
	}
}

func TestSingletonsSurfacesBackendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":"42P01","message":"relation \"hero\" does not exist"}`)
	}))
	defer srv.Close()

	err := Singletons(NewClient(srv.URL, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed check hero")
	assert.Contains(t, err.Error(), "does not exist")
}
