// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package guard

import (
	"testing"

	"github.com/staffdeck/staffdeck/lib/session"
)

func TestCheckNilSessionRedirectsToLogin(t *testing.T) {
	decision := Check(nil, session.RoleAdmin)
	if decision.State != Redirecting {
		t.Fatalf("state = %d, want Redirecting", decision.State)
	}
	if decision.Target != TargetLogin {
		t.Fatalf("target = %d, want TargetLogin", decision.Target)
	}
}

func TestCheckMatchingRoleAuthorizes(t *testing.T) {
	sess := &session.Session{Token: "tok", UserID: "u-1", Name: "Priya", Role: session.RoleAdmin}
	decision := Check(sess, session.RoleAdmin)
	if decision.State != Authorized {
		t.Fatalf("state = %d, want Authorized", decision.State)
	}
	if decision.Target != TargetNone {
		t.Fatalf("target = %d, want TargetNone", decision.Target)
	}
}

func TestCheckMismatchRedirectsToOwnHome(t *testing.T) {
	tests := []struct {
		name     string
		role     session.Role
		required session.Role
		want     Target
	}{
		{"employee denied admin view", session.RoleEmployee, session.RoleAdmin, TargetEmployeeHome},
		{"admin denied employee view", session.RoleAdmin, session.RoleEmployee, TargetAdminHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &session.Session{Token: "tok", UserID: "u-1", Name: "Priya", Role: tt.role}
			decision := Check(sess, tt.required)
			if decision.State != Redirecting {
				t.Fatalf("state = %d, want Redirecting", decision.State)
			}
			if decision.Target != tt.want {
				t.Fatalf("target = %d, want %d", decision.Target, tt.want)
			}
		})
	}
}

func TestCheckRoleComparisonIsCaseInsensitive(t *testing.T) {
	sess := &session.Session{Token: "tok", UserID: "u-1", Name: "Priya", Role: session.Role("Admin")}
	decision := Check(sess, session.RoleAdmin)
	if decision.State != Authorized {
		t.Fatalf("state = %d, want Authorized for mixed-case role", decision.State)
	}
}

func TestHomeTargetUnknownRoleFallsBackToLogin(t *testing.T) {
	if got := HomeTarget(session.Role("contractor")); got != TargetLogin {
		t.Fatalf("HomeTarget = %d, want TargetLogin", got)
	}
}
