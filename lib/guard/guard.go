// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package guard decides whether a protected view may be entered.
//
// Every protected view — the admin dashboard, the employee profile —
// runs Check before issuing any data fetch. An unauthenticated viewer
// is redirected to login; an authenticated viewer whose role does not
// match the view's requirement is redirected to their own role's home
// view. Running the check first means a denied viewer never causes a
// fetch for data they may not see.
package guard

import "github.com/staffdeck/staffdeck/lib/session"

// State is the guard's position in the view-entry handshake.
type State int

const (
	// Unchecked means Check has not run for this view entry.
	Unchecked State = iota
	// Redirecting means entry was denied; Target names where to go.
	// No further view logic executes.
	Redirecting
	// Authorized means entry is allowed and the view may load data.
	Authorized
)

// Target names a navigation destination for a redirect.
type Target int

const (
	// TargetNone is the zero target; set only on Authorized decisions.
	TargetNone Target = iota
	// TargetLogin is the unauthenticated entry view.
	TargetLogin
	// TargetAdminHome is the administrator dashboard.
	TargetAdminHome
	// TargetEmployeeHome is the employee self-service profile.
	TargetEmployeeHome
)

// Decision is the outcome of a view-entry check.
type Decision struct {
	State  State
	Target Target
}

// Check gates entry to a view requiring the given role. A nil session
// redirects to login. A role mismatch (compared case-insensitively)
// redirects to the session role's own home view rather than login —
// the viewer is authenticated, just in the wrong place.
func Check(sess *session.Session, required session.Role) Decision {
	if sess == nil {
		return Decision{State: Redirecting, Target: TargetLogin}
	}
	if !sess.Role.Is(required) {
		return Decision{State: Redirecting, Target: HomeTarget(sess.Role)}
	}
	return Decision{State: Authorized, Target: TargetNone}
}

// HomeTarget maps a role to its home view. Unknown roles go to login;
// a session with an unknown role should not exist (the store rejects
// them), but a redirect loop would be worse than a re-login.
func HomeTarget(role session.Role) Target {
	switch {
	case role.Is(session.RoleAdmin):
		return TargetAdminHome
	case role.Is(session.RoleEmployee):
		return TargetEmployeeHome
	default:
		return TargetLogin
	}
}
