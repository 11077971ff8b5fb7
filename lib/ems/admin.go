// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package ems

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListEmployees returns one page of the employee set. pageNumber is
// 1-based. Filters with zero values are omitted from the query.
func (client *Client) ListEmployees(ctx context.Context, pageNumber, pageSize int, filters ListFilters) (*Page, error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("ems: pageNumber must be >= 1, got %d", pageNumber)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("ems: pageSize must be >= 1, got %d", pageSize)
	}

	query := url.Values{}
	query.Set("pageNumber", strconv.Itoa(pageNumber))
	query.Set("pageSize", strconv.Itoa(pageSize))
	filters.query(query)

	body, err := client.doRequest(ctx, http.MethodGet, "/admin/employees", query, nil, authorized)
	if err != nil {
		return nil, fmt.Errorf("list employees page %d: %w", pageNumber, err)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("list employees page %d: parsing response: %w", pageNumber, err)
	}
	return &page, nil
}

// UpdateEmployee replaces an employee record through the admin
// endpoint. Unlike UpdateProfile, the payload may change Status.
func (client *Client) UpdateEmployee(ctx context.Context, id string, payload EmployeePayload) (*EmployeeRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("ems: employee id is required")
	}

	body, err := client.doRequest(ctx, http.MethodPut, "/admin/employee/"+url.PathEscape(id), nil, payload, authorized)
	if err != nil {
		return nil, fmt.Errorf("update employee %s: %w", id, err)
	}

	var record EmployeeRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("update employee %s: parsing response: %w", id, err)
	}
	return &record, nil
}

// DeleteEmployee removes an employee. Whether the backend hard-deletes
// or soft-deactivates is the backend's policy, not the client's — the
// config layer decides whether the dashboard's delete action calls
// this at all or issues a deactivating update instead.
func (client *Client) DeleteEmployee(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("ems: employee id is required")
	}

	if _, err := client.doRequest(ctx, http.MethodDelete, "/admin/employee/"+url.PathEscape(id), nil, nil, authorized); err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	return nil
}

// FindEmployee pages through the admin listing until it finds the
// record with the given ID. The backend has no single-record admin
// endpoint, and replace-style updates need the current field values,
// so the CLI resolves records this way before mutating them.
func (client *Client) FindEmployee(ctx context.Context, id string) (*EmployeeRecord, error) {
	const pageSize = 50

	for pageNumber := 1; ; pageNumber++ {
		page, err := client.ListEmployees(ctx, pageNumber, pageSize, ListFilters{})
		if err != nil {
			return nil, fmt.Errorf("find employee %s: %w", id, err)
		}

		for _, record := range page.Items {
			if record.ID == id {
				return &record, nil
			}
		}

		if pageNumber*pageSize >= page.TotalCount || len(page.Items) == 0 {
			return nil, &APIError{
				StatusCode: http.StatusNotFound,
				Message:    fmt.Sprintf("no employee with id %s", id),
			}
		}
	}
}
