// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned by Do for every non-2xx response. Code, Message,
// Details and Hint are filled from the PostgREST error body when it parses
// as JSON; otherwise only Status and StatusText are set.
type APIError struct {
	Status     int
	StatusText string
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`

	// Raw is the undecoded JSON body, kept when it had no message field.
	Raw string `json:"-"`
}

// Error formats the failure. The HTTP status is always present.
func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		code := e.Code
		if code == "" {
			code = fmt.Sprint(e.Status)
		}
		return fmt.Sprintf("API request failed with status %d: error %s: %s", e.Status, code, e.Message)
	case e.Raw != "":
		return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.Raw)
	default:
		return fmt.Sprintf("API request failed: %d %s", e.Status, e.StatusText)
	}
}

// IsNotFound reports whether the backend answered 404.
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsConflict reports a unique or foreign-key violation (409).
func (e *APIError) IsConflict() bool {
	return e.Status == http.StatusConflict
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// newAPIError builds an APIError from a failed response. The body is
// decoded leniently: anything that is not a JSON object falls back to
// the HTTP status text.
func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
	}

	var fields struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
		Details string          `json:"details"`
		Hint    string          `json:"hint"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return apiErr
	}

	apiErr.Code = rawScalar(fields.Code)
	apiErr.Message = fields.Message
	apiErr.Details = fields.Details
	apiErr.Hint = fields.Hint
	if apiErr.Message == "" {
		apiErr.Raw = strings.TrimSpace(string(body))
	}
	return apiErr
}

// statusText prefers the reason phrase sent by the server ("404 Not Found")
// and falls back to the standard text for the code.
func statusText(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok && reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}

// rawScalar turns a JSON string or number into its plain text form.
// PostgREST sends SQLSTATE codes as strings, some proxies as numbers.
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
