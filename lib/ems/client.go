// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package ems

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/staffdeck/staffdeck/lib/netutil"
	"github.com/staffdeck/staffdeck/lib/session"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the backend API root (e.g. "https://ems.example.com/api").
	BaseURL string

	// Store is the session store the gateway reads tokens from and
	// clears on authorization expiry. Required.
	Store *session.Store

	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used. Tests point this (or BaseURL) at an httptest.Server.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger

	// OnAuthExpired is invoked after the gateway clears the session in
	// response to a 401 on an authorized call. The CLI prints a
	// "run staffdeck login" hint here; the dashboard routes to its
	// login screen. May be nil.
	OnAuthExpired func()
}

// Client is the typed HTTP client for the employee backend. It is safe
// for use from multiple goroutines.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	store         *session.Store
	logger        *slog.Logger
	onAuthExpired func()
}

// New creates a Client. The BaseURL string form is stored with its
// trailing slash stripped and request URLs are built by concatenation.
func New(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("ems: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("ems: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if config.Store == nil {
		return nil, fmt.Errorf("ems: Store is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:       strings.TrimRight(config.BaseURL, "/"),
		httpClient:    httpClient,
		store:         config.Store,
		logger:        logger,
		onAuthExpired: config.OnAuthExpired,
	}, nil
}

// Store returns the session store this client was configured with.
func (client *Client) Store() *session.Store {
	return client.store
}

// authorized marks requests that carry the session token and
// participate in the global 401 handling. Auth endpoints (login,
// register) pass unauthenticated instead.
const (
	authorized      = true
	unauthenticated = false
)

// doRequest performs a JSON request and returns the response body.
// On 2xx, returns the body. On 401 of an authorized call, runs the
// expiry side effect and returns ErrAuthExpired. On any other non-2xx,
// returns an *APIError carrying the backend's message.
func (client *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any, withAuth bool) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("ems: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := client.newRequest(ctx, method, path, query, bodyReader, withAuth)
	if err != nil {
		return nil, err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	return client.execute(request, method, path, withAuth)
}

// doRequestMultipart performs a request with a multipart form body
// (registration, photo upload).
func (client *Client) doRequestMultipart(ctx context.Context, method, path string, contentType string, body io.Reader, withAuth bool) ([]byte, error) {
	request, err := client.newRequest(ctx, method, path, nil, body, withAuth)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", contentType)

	return client.execute(request, method, path, withAuth)
}

// newRequest builds the request and attaches the bearer token when a
// session is present. An absent session on an authorized call is not
// an error here — the request goes out bare and the backend's 401
// drives the rest.
func (client *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, withAuth bool) (*http.Request, error) {
	requestURL := client.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("ems: creating request: %w", err)
	}

	if withAuth {
		sess, err := client.store.Load()
		switch {
		case err == nil:
			request.Header.Set("Authorization", "Bearer "+sess.Token)
		case errors.Is(err, session.ErrAbsent):
			// No session — send without the header.
		default:
			// An unreadable session file must not wedge the client.
			// Treat it as absent and let the backend decide.
			client.logger.Warn("session load failed, sending unauthenticated", "error", err)
		}
	}

	return request, nil
}

// execute sends the request and applies the shared response handling.
func (client *Client) execute(request *http.Request, method, path string, withAuth bool) ([]byte, error) {
	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("ems: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("ems: reading response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	if withAuth && response.StatusCode == http.StatusUnauthorized {
		client.expireSession()
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrAuthExpired)
	}

	return nil, &APIError{
		StatusCode: response.StatusCode,
		Message:    errorMessage(responseBody),
	}
}

// expireSession is the single place the forced-logout side effect
// happens: clear the store, then fire the hook. Runs once per failing
// response.
func (client *Client) expireSession() {
	if err := client.store.Clear(); err != nil {
		client.logger.Warn("clearing expired session failed", "error", err)
	}
	client.logger.Info("session expired, cleared stored credentials")
	if client.onAuthExpired != nil {
		client.onAuthExpired()
	}
}
