// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package ems

import (
	"fmt"
	"net/url"
	"strings"
)

// Status is an employee's account state.
type Status string

const (
	// StatusActive marks an employee able to use the system.
	StatusActive Status = "Active"
	// StatusInactive marks a disabled (soft-deleted) employee.
	StatusInactive Status = "Inactive"
)

// Toggled returns the opposite status. Anything that isn't Active
// toggles to Active, matching the backend's two-state model.
func (status Status) Toggled() Status {
	if status == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// ParseStatus maps user input to a Status, accepting any casing.
func ParseStatus(value string) (Status, error) {
	switch {
	case strings.EqualFold(value, string(StatusActive)):
		return StatusActive, nil
	case strings.EqualFold(value, string(StatusInactive)):
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("unknown status %q (want Active or Inactive)", value)
	}
}

// EmployeeRecord is the backend's employee shape. ID and Email are
// assigned by the backend and never altered by this client.
type EmployeeRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Address     string `json:"address"`
	Skillset    string `json:"skillset"`
	Status      Status `json:"status"`
	JoiningDate string `json:"joiningDate,omitempty"`
	PhotoPath   string `json:"photoPath,omitempty"`
}

// EmployeePayload is the body of a replace-style update. The backend
// performs whole-record replacement, so every field must be carried —
// a missing field would be persisted as empty, not left unchanged.
// Build payloads through the draft package rather than by hand.
type EmployeePayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Address     string `json:"address"`
	Skillset    string `json:"skillset"`
	Status      Status `json:"status"`
	JoiningDate string `json:"joiningDate,omitempty"`
}

// Page is one bounded slice of the employee set with pagination
// metadata, as returned by the admin listing endpoint.
type Page struct {
	Items      []EmployeeRecord `json:"items"`
	PageNumber int              `json:"pageNumber"`
	PageSize   int              `json:"pageSize"`
	TotalCount int              `json:"totalCount"`
}

// ListFilters narrows and orders the admin employee listing. Zero
// values are omitted from the query string entirely — the backend
// treats an absent parameter and an empty one differently in some
// deployments, so we never send empty ones.
type ListFilters struct {
	// Search matches against name and email.
	Search string
	// Status restricts to "Active" or "Inactive".
	Status string
	// SortBy names a record field; SortOrder is "asc" or "desc".
	SortBy    string
	SortOrder string
}

// query encodes the filters into query parameters, skipping zero values.
func (filters ListFilters) query(values url.Values) {
	if filters.Search != "" {
		values.Set("search", filters.Search)
	}
	if filters.Status != "" {
		values.Set("status", filters.Status)
	}
	if filters.SortBy != "" {
		values.Set("sortBy", filters.SortBy)
	}
	if filters.SortOrder != "" {
		values.Set("sortOrder", filters.SortOrder)
	}
}

// AuthResponse is the wire format of a successful login.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// RegisterRequest carries the fields for creating an employee account.
// Registration is a multipart form because of the optional photo.
// No session is established by registration.
type RegisterRequest struct {
	Name        string
	Email       string
	Password    string
	Department  string
	Designation string
	Address     string
	Skillset    string
	JoiningDate string

	// Photo is the optional profile image content; PhotoFilename is
	// its original file name (used by the backend for the extension).
	Photo         []byte
	PhotoFilename string
}
