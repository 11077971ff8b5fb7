// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the client's record of the currently
// authenticated identity: the bearer token, user ID, display name, and
// role. The session is persisted as a JSON file under the user's
// config directory and survives across invocations, analogous to SSH
// keys — authenticate once with "staffdeck login", then access is
// seamless.
//
// A session is valid only when all four fields are present. Partial
// state (a token without a role, say) reads as absent rather than as
// an error, so a half-written or hand-damaged file degrades to "please
// log in again" instead of undefined behavior.
//
// The Store is the sole owner of the session file. Everything that
// needs the session — the request gateway, the route guard, the CLI
// commands — receives a *Store by injection and goes through its
// Establish/Load/Clear lifecycle. Nothing else touches the file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Role is the authorization role the backend assigned at login.
type Role string

const (
	// RoleAdmin grants access to the administrator dashboard.
	RoleAdmin Role = "admin"
	// RoleEmployee grants access to the self-service profile.
	RoleEmployee Role = "employee"
)

// ParseRole normalizes a backend-supplied role string. Backend
// variants disagree on role casing ("Admin", "ADMIN", "admin"), so
// comparison is case-insensitive and the stored form is lowercase.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "admin":
		return RoleAdmin, nil
	case "employee":
		return RoleEmployee, nil
	default:
		return "", fmt.Errorf("session: unknown role %q", value)
	}
}

// Is reports whether two roles match, ignoring case. Use this instead
// of == when one side may not have gone through ParseRole.
func (role Role) Is(other Role) bool {
	return strings.EqualFold(string(role), string(other))
}

// Session is the authenticated identity persisted between commands.
type Session struct {
	// Token is the bearer credential attached to every authorized
	// backend request.
	Token string `json:"token"`

	// UserID is the backend's identifier for the account.
	UserID string `json:"user_id"`

	// Name is the account's display name, shown in the dashboard
	// header and by "staffdeck whoami".
	Name string `json:"name"`

	// Role selects the home view and gates protected views.
	Role Role `json:"role"`
}

// ErrAbsent is returned by Load when no session is established. A
// missing file and a file with any empty field both read as absent.
var ErrAbsent = errors.New("session: not logged in")

// Store reads and writes the session file at a fixed path. Construct
// with NewStore and hand the same instance to every consumer.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path. The file need
// not exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the session file path this store was configured with.
func (store *Store) Path() string {
	return store.path
}

// DefaultPath returns the well-known session file location. Checks the
// STAFFDECK_SESSION_FILE environment variable first, then falls back
// to $XDG_CONFIG_HOME/staffdeck/session.json (or its ~/.config
// equivalent).
func DefaultPath() string {
	if envPath := os.Getenv("STAFFDECK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "staffdeck-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "staffdeck", "session.json")
}

// Establish persists the session. All four fields must be present —
// Establish refuses to write a partial session so that Load never
// observes one. Creates the parent directory with mode 0700 if needed;
// the file itself is written 0600 since it contains the bearer token.
func (store *Store) Establish(sess Session) error {
	sess.Role = Role(strings.ToLower(string(sess.Role)))
	if err := validate(sess); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshaling: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("session: creating directory %s: %w", directory, err)
	}

	if err := os.WriteFile(store.path, data, 0600); err != nil {
		return fmt.Errorf("session: writing %s: %w", store.path, err)
	}
	return nil
}

// Load returns the current session, or ErrAbsent when no complete
// session is stored. Pure read — no side effects, safe to call on
// every request.
func (store *Store) Load() (*Session, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrAbsent
		}
		return nil, fmt.Errorf("session: reading %s: %w", store.path, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: parsing %s: %w", store.path, err)
	}

	sess.Role = Role(strings.ToLower(string(sess.Role)))
	if validate(sess) != nil {
		// Partial state is treated as absent, not as corruption.
		return nil, ErrAbsent
	}
	return &sess, nil
}

// Clear removes the session file. Idempotent — clearing an
// already-empty store is not an error.
func (store *Store) Clear() error {
	err := os.Remove(store.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clearing %s: %w", store.path, err)
	}
	return nil
}

// validate checks that every required field is present and the role is
// one of the two known values.
func validate(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("session: missing token")
	}
	if sess.UserID == "" {
		return fmt.Errorf("session: missing user_id")
	}
	if sess.Name == "" {
		return fmt.Errorf("session: missing name")
	}
	if _, err := ParseRole(string(sess.Role)); err != nil {
		return err
	}
	return nil
}
