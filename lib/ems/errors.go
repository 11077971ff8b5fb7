// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package ems

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrAuthExpired is returned by every authorized call that received an
// HTTP 401. By the time the caller sees it, the gateway has already
// cleared the session and fired the expiry hook — the caller's only
// job is to route the user back to login.
var ErrAuthExpired = errors.New("ems: authorization expired")

// APIError is a non-2xx response from the backend. Callers can use
// errors.As to extract the structured information:
//
//	var apiErr *ems.APIError
//	if errors.As(err, &apiErr) {
//	    if apiErr.StatusCode == http.StatusConflict { ... }
//	}
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is the backend's human-readable error text, surfaced
	// verbatim to the user (e.g. "Invalid credentials").
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ems: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given HTTP
// status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == statusCode
	}
	return false
}

// errorMessage extracts the human-readable message from an error
// response body. The backend usually returns a JSON object with a
// "message" field, but some endpoints (and some proxies in front of
// them) return a bare string — take whatever is there.
func errorMessage(body []byte) string {
	var structured struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Message != "" {
		return structured.Message
	}

	// A JSON string literal ("Invalid credentials") decodes cleanly.
	var literal string
	if err := json.Unmarshal(body, &literal); err == nil && literal != "" {
		return literal
	}

	return strings.TrimSpace(string(body))
}
