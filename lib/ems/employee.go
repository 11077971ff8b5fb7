// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package ems

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Profile returns the calling employee's own record. The backend
// resolves the identity from the bearer token.
func (client *Client) Profile(ctx context.Context) (*EmployeeRecord, error) {
	body, err := client.doRequest(ctx, http.MethodGet, "/employee/profile", nil, nil, authorized)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	var record EmployeeRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("profile: parsing response: %w", err)
	}
	return &record, nil
}

// UpdateProfile replaces the calling employee's own record. The
// payload must carry every field — the backend performs whole-record
// replacement.
func (client *Client) UpdateProfile(ctx context.Context, id string, payload EmployeePayload) (*EmployeeRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("ems: employee id is required")
	}

	body, err := client.doRequest(ctx, http.MethodPut, "/employee/"+url.PathEscape(id), nil, payload, authorized)
	if err != nil {
		return nil, fmt.Errorf("update profile %s: %w", id, err)
	}

	var record EmployeeRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("update profile %s: parsing response: %w", id, err)
	}
	return &record, nil
}

// UpdatePhoto replaces the employee's profile photo. An empty reader
// clears it.
func (client *Client) UpdatePhoto(ctx context.Context, id, filename string, photo io.Reader) error {
	if id == "" {
		return fmt.Errorf("ems: employee id is required")
	}

	var buffer bytes.Buffer
	form := multipart.NewWriter(&buffer)
	if photo != nil {
		if filename == "" {
			filename = "photo"
		}
		part, err := form.CreateFormFile("photo", filename)
		if err != nil {
			return fmt.Errorf("ems: encoding photo form: %w", err)
		}
		if _, err := io.Copy(part, photo); err != nil {
			return fmt.Errorf("ems: encoding photo form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("ems: finalizing photo form: %w", err)
	}

	path := "/employee/" + url.PathEscape(id) + "/photo"
	if _, err := client.doRequestMultipart(ctx, http.MethodPut, path, form.FormDataContentType(), &buffer, authorized); err != nil {
		return fmt.Errorf("update photo %s: %w", id, err)
	}
	return nil
}
