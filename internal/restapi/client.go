// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package restapi is the transport layer between the admin console and the
// PostgREST-style data API that stores the portfolio content. It issues one
// HTTP call per Do, attaches the API key and content headers, and decodes
// the response into raw JSON or an *APIError.
//
// The client holds no state between calls: no cache, no retries.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Prefer controls the PostgREST "Prefer: return=..." header on mutations.
type Prefer string

const (
	// ReturnRepresentation asks the backend to echo the written row(s).
	ReturnRepresentation Prefer = "representation"

	// ReturnMinimal asks the backend to return no body.
	ReturnMinimal Prefer = "minimal"

	// ReturnDefault sends no Prefer header at all.
	ReturnDefault Prefer = ""
)

// Observer receives one callback per completed backend call. The metrics
// collector implements it; a nil Observer is allowed.
type Observer interface {
	ObserveBackendCall(table, method string, status int, elapsed time.Duration)
}

// Client performs calls against a fixed base endpoint with a fixed API key.
// It is safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver attaches a call observer such as the metrics collector.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New creates a client for the given base endpoint (e.g.
// "https://db.example.com/rest/v1") and API key.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured endpoint without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIKey returns the configured API key.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Do issues a single request. path is appended to the base endpoint and
// normally comes from Query.String. body, when non-nil, is sent as JSON.
//
// On a 2xx response with status 204, a zero Content-Length or an empty body,
// Do returns (nil, nil), the explicit no-data result (see IsNoData).
// Any non-2xx status yields an *APIError.
func (c *Client) Do(ctx context.Context, method, path string, prefer Prefer, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("restapi marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("restapi request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if prefer != ReturnDefault {
		req.Header.Set("Prefer", "return="+string(prefer))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(path, method, 0, start)
		return nil, fmt.Errorf("restapi %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.observe(path, method, resp.StatusCode, start)
	if err != nil {
		return nil, fmt.Errorf("restapi read body: %w", err)
	}

	slog.Debug("backend call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp, respBody)
	}

	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 || len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("restapi %s %s: response is not valid JSON", method, path)
	}

	return json.RawMessage(respBody), nil
}

// IsNoData reports whether raw is the no-data result returned by Do for
// 204 and empty responses.
func IsNoData(raw json.RawMessage) bool {
	return raw == nil
}

func (c *Client) observe(path, method string, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveBackendCall(TableOf(path), method, status, time.Since(start))
}
