// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

var validToken = strings.Repeat("ab", csrfTokenLength)

func csrfCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	return nil
}

func TestCSRFSetsCookie(t *testing.T) {
	for _, secure := range []bool{true, false} {
		var ctxToken string
		h := CSRF(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxToken = CSRFTokenFromCtx(r.Context())
		}))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

		c := csrfCookie(rr)
		if c == nil {
			t.Fatal("CSRF cookie not set")
		}
		if c.Secure != secure {
			t.Errorf("Secure = %v, want %v", c.Secure, secure)
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Errorf("SameSite = %v", c.SameSite)
		}
		if len(c.Value) != 2*csrfTokenLength || ctxToken != c.Value {
			t.Errorf("cookie %q, context %q", c.Value, ctxToken)
		}
	}
}

func TestCSRFKeepsExistingToken(t *testing.T) {
	h := CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: validToken})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if csrfCookie(rr) != nil {
		t.Error("should not reissue a valid token")
	}
}

func TestCSRFValidation(t *testing.T) {
	tests := []struct {
		name   string
		header string
		form   string
		want   int
	}{
		{"missing token", "", "", http.StatusForbidden},
		{"wrong header", "nope", "", http.StatusForbidden},
		{"header matches", validToken, "", http.StatusOK},
		{"form field matches", "", validToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			body := url.Values{}
			if tt.form != "" {
				body.Set(CSRFFormField, tt.form)
			}
			req := httptest.NewRequest(http.MethodPost, "/admin/projects", strings.NewReader(body.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: validToken})
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestCSRFTokenFromCtxEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := CSRFTokenFromCtx(req.Context()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
