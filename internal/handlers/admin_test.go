// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"folioadmin/internal/restapi"
)

func TestDashboardCounts(t *testing.T) {
	env := newTestEnv(t, map[string]backendReply{
		"GET /projects": {Status: 200, Body: `[{"id":1,"title":"A","tags":[]},{"id":2,"title":"B","tags":[]},{"id":3,"title":"C","tags":[]}]`},
		"GET /hero":     {Status: 200, Body: `[{"greeting":"Hello,","name":"Ada","title":"Engineer","subtitle":""}]`},
	})

	rec := env.serve(env.admin.Dashboard, http.MethodGet, "/admin", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	assertContains(t, body, `<span class="stat-value">3</span><span class="stat-label">Projects</span>`)
	assertContains(t, body, "Hello, Ada")
	assertNotContains(t, body, msgNotLoaded)
}

func TestPagesWarnWithoutSnapshot(t *testing.T) {
	env := newTestEnv(t, map[string]backendReply{
		"GET /services": {Status: 500, Body: `{"message":"boom"}`},
	})
	if _, ok := env.ws.Snapshot(); ok {
		t.Fatal("expected no snapshot after a failed load")
	}

	tests := []struct {
		name string
		h    http.HandlerFunc
	}{
		{"dashboard", env.admin.Dashboard},
		{"hero", env.admin.HeroPage},
		{"skills", env.admin.SkillsPage},
		{"projects", env.admin.Projects.List},
		{"contact", env.admin.ContactList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.serve(tt.h, http.MethodGet, "/admin", nil, "")
			assertContains(t, rec.Body.String(), msgNotLoaded)
		})
	}
}

func TestHeroPageShowsDefaultsForEmptyTable(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.serve(env.admin.HeroPage, http.MethodGet, "/admin/hero", nil, "")
	assertContains(t, rec.Body.String(), `value="Your Name"`)
}

func TestReload(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.set("GET /projects", backendReply{Status: 200, Body: `[{"id":9,"title":"New","tags":[]}]`})

	rec := env.serve(env.admin.Reload, http.MethodPost, "/admin/reload", nil, "")
	body := rec.Body.String()
	assertContains(t, body, "All content reloaded.")
	assertContains(t, body, `<span class="stat-value">1</span><span class="stat-label">Projects</span>`)
	if got := rec.Header().Get("HX-Push-Url"); got != "/admin" {
		t.Errorf("HX-Push-Url = %q, want /admin", got)
	}
}

func TestReloadFailureKeepsEarlierContent(t *testing.T) {
	env := newTestEnv(t, map[string]backendReply{
		"GET /projects": {Status: 200, Body: `[{"id":1,"title":"Kept","tags":[]}]`},
	})
	env.backend.set("GET /projects", backendReply{Status: 503})

	rec := env.serve(env.admin.Reload, http.MethodPost, "/admin/reload", nil, "")
	body := rec.Body.String()
	assertContains(t, body, "Showing the content loaded earlier.")
	assertContains(t, body, `<span class="stat-value">1</span><span class="stat-label">Projects</span>`)
}

func TestPreview(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.serve(env.admin.Preview, http.MethodPost, "/admin/preview", url.Values{"description": {"**bold**"}}, "")
	assertContains(t, rec.Body.String(), "<strong>bold</strong>")

	rec = env.serve(env.admin.Preview, http.MethodPost, "/admin/preview", url.Values{"description": {""}}, "")
	assertContains(t, rec.Body.String(), "Nothing to preview.")
}

func TestFailureMessage(t *testing.T) {
	wrap := func(e *restapi.APIError) error { return fmt.Errorf("update projects 3: %w", e) }

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"conflict", wrap(&restapi.APIError{Status: 409}), "Could not save: it conflicts with existing data."},
		{"not found", wrap(&restapi.APIError{Status: 404}), "Could not save: it no longer exists."},
		{"forbidden", wrap(&restapi.APIError{Status: 403}), "Could not save: the data service refused the request."},
		{"message", wrap(&restapi.APIError{Status: 400, Message: "value too long"}), "Could not save: value too long"},
		{"status", wrap(&restapi.APIError{Status: 502, StatusText: "Bad Gateway"}), "Could not save: the data service answered 502 Bad Gateway."},
		{"timeout", fmt.Errorf("get: %w", context.DeadlineExceeded), "Could not save: the data service timed out."},
		{"network", errors.New("dial tcp: connection refused"), "Could not save: the data service is unreachable."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failureMessage("Could not save", tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"go", []string{"go"}},
		{" go , htmx,, go ,sql ", []string{"go", "htmx", "sql"}},
	}
	for _, tt := range tests {
		if got := splitTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTags(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestFormBool(t *testing.T) {
	for in, want := range map[string]bool{"on": true, "true": true, "1": true, "YES": true, "": false, "false": false, "off": false} {
		r, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"x": {in}}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if got := formBool(r, "x"); got != want {
			t.Errorf("formBool(%q) = %v, want %v", in, got, want)
		}
	}
}
