// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package ems is the typed HTTP client for the employee-management
// backend API. It is the only component that talks to the backend:
// every CLI command and dashboard view routes its requests through a
// single *Client.
//
// The client is also the authorization gateway. It attaches the stored
// bearer token to every authorized request, and it alone reacts to an
// HTTP 401: the session store is cleared and the configured expiry
// hook fires, exactly once per failing response, before the call
// returns ErrAuthExpired. Callers cannot bypass this — views never
// perform the expiry logout themselves (they may still Clear the store
// for an explicit user-initiated logout).
//
// The authentication endpoints (login, register) are deliberately
// outside the 401 handling: a 401 from /auth/login means "wrong
// password" and is surfaced verbatim, not "session expired".
package ems
