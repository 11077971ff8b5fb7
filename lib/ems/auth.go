// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package ems

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

// Login authenticates with username and password and returns the
// backend's auth payload. Login does NOT establish the session — the
// caller verifies the payload (parsing the role, at minimum) and then
// writes it through the session store. A failed login surfaces the
// backend's message verbatim via *APIError; it never triggers the
// forced-logout path even when the status is 401.
func (client *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	if username == "" {
		return nil, fmt.Errorf("ems: username is required for login")
	}
	if password == "" {
		return nil, fmt.Errorf("ems: password is required for login")
	}

	loginRequest := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{
		Username: username,
		Password: password,
	}

	body, err := client.doRequest(ctx, http.MethodPost, "/auth/login", nil, loginRequest, unauthenticated)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var auth AuthResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return nil, fmt.Errorf("login: parsing response: %w", err)
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("login: empty token in response")
	}

	client.logger.Info("logged in", "user_id", auth.UserID, "role", auth.Role)
	return &auth, nil
}

// Register creates an employee account. The request is a multipart
// form because of the optional photo. No session is established — the
// new employee logs in separately.
func (client *Client) Register(ctx context.Context, request RegisterRequest) error {
	if request.Email == "" {
		return fmt.Errorf("ems: email is required for registration")
	}
	if request.Password == "" {
		return fmt.Errorf("ems: password is required for registration")
	}

	var buffer bytes.Buffer
	form := multipart.NewWriter(&buffer)

	fields := map[string]string{
		"name":        request.Name,
		"email":       request.Email,
		"password":    request.Password,
		"department":  request.Department,
		"designation": request.Designation,
		"address":     request.Address,
		"skillset":    request.Skillset,
		"joiningDate": request.JoiningDate,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("ems: encoding registration form: %w", err)
		}
	}

	if len(request.Photo) > 0 {
		filename := request.PhotoFilename
		if filename == "" {
			filename = "photo"
		}
		part, err := form.CreateFormFile("photo", filename)
		if err != nil {
			return fmt.Errorf("ems: encoding registration photo: %w", err)
		}
		if _, err := part.Write(request.Photo); err != nil {
			return fmt.Errorf("ems: encoding registration photo: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return fmt.Errorf("ems: finalizing registration form: %w", err)
	}

	if _, err := client.doRequestMultipart(ctx, http.MethodPost, "/auth/register", form.FormDataContentType(), &buffer, unauthenticated); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	client.logger.Info("registered employee", "email", request.Email)
	return nil
}
