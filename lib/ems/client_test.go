// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package ems

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/staffdeck/staffdeck/lib/session"
	"github.com/staffdeck/staffdeck/lib/testutil"
)

func testStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func establishSession(t *testing.T, store *session.Store, role session.Role) {
	t.Helper()
	err := store.Establish(session.Session{
		Token:  "tok-test",
		UserID: "u-1",
		Name:   "Test User",
		Role:   role,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func testClient(t *testing.T, server *httptest.Server, store *session.Store, onExpired func()) *Client {
	t.Helper()
	client, err := New(ClientConfig{
		BaseURL:       server.URL,
		Store:         store,
		HTTPClient:    server.Client(),
		OnAuthExpired: onExpired,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func sampleRecord() EmployeeRecord {
	return EmployeeRecord{
		ID:          "e-42",
		Name:        "Ravi Kumar",
		Email:       "ravi@example.com",
		Department:  "Engineering",
		Designation: "Developer",
		Address:     "12 North Street",
		Skillset:    "go,sql",
		Status:      StatusActive,
		JoiningDate: "2023-04-01",
	}
}

func TestAuthorizedCallAttachesBearerToken(t *testing.T) {
	store := testStore(t)
	establishSession(t, store, session.RoleEmployee)

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(sampleRecord())
	}))
	defer server.Close()

	client := testClient(t, server, store, nil)
	if _, err := client.Profile(context.Background()); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if gotAuth != "Bearer tok-test" {
		t.Errorf("Authorization = %q, want Bearer tok-test", gotAuth)
	}
}

func TestAbsentSessionSendsNoHeader(t *testing.T) {
	store := testStore(t)

	var gotAuth string
	var hadHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadHeader = r.Header["Authorization"]
		json.NewEncoder(w).Encode(sampleRecord())
	}))
	defer server.Close()

	client := testClient(t, server, store, nil)
	if _, err := client.Profile(context.Background()); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if hadHeader {
		t.Errorf("request carried Authorization %q with no session established", gotAuth)
	}
}

func TestUnauthorizedResponseClearsSessionAndFiresHookOnce(t *testing.T) {
	store := testStore(t)
	establishSession(t, store, session.RoleAdmin)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	hookCalls := 0
	client := testClient(t, server, store, func() { hookCalls++ })

	_, err := client.ListEmployees(context.Background(), 1, 10, ListFilters{})
	if !errors.Is(err, ErrAuthExpired) {
		t.Fatalf("err = %v, want ErrAuthExpired", err)
	}
	if hookCalls != 1 {
		t.Errorf("expiry hook fired %d times, want exactly 1", hookCalls)
	}
	if _, err := store.Load(); !errors.Is(err, session.ErrAbsent) {
		t.Errorf("session after 401 = %v, want ErrAbsent", err)
	}
}

func TestExpiryHookFiresFromConcurrentCaller(t *testing.T) {
	store := testStore(t)
	establishSession(t, store, session.RoleAdmin)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	// The dashboard issues calls from command goroutines; the hook
	// must be delivered regardless of which goroutine hits the 401.
	expired := make(chan struct{}, 1)
	client := testClient(t, server, store, func() { expired <- struct{}{} })

	go func() {
		_, _ = client.Profile(context.Background())
	}()

	testutil.RequireReceive(t, expired, 5*time.Second, "waiting for expiry hook")
}

func TestLoginFailureDoesNotTriggerForcedLogout(t *testing.T) {
	store := testStore(t)
	establishSession(t, store, session.RoleEmployee)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer server.Close()

	hookCalls := 0
	client := testClient(t, server, store, func() { hookCalls++ })

	_, err := client.Login(context.Background(), "admin", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("message = %q, want the backend text verbatim", apiErr.Message)
	}
	if hookCalls != 0 {
		t.Errorf("expiry hook fired %d times on a login failure", hookCalls)
	}
	// The existing session (if any) survives a failed login attempt.
	if _, err := store.Load(); err != nil {
		t.Errorf("session after failed login = %v, want intact", err)
	}
}

func TestNonAuthErrorsPassThrough(t *testing.T) {
	store := testStore(t)
	establishSession(t, store, session.RoleAdmin)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "email already registered"})
	}))
	defer server.Close()

	hookCalls := 0
	client := testClient(t, server, store, func() { hookCalls++ })

	_, err := client.UpdateEmployee(context.Background(), "e-42", EmployeePayload{ID: "e-42"})
	if !IsStatus(err, http.StatusConflict) {
		t.Fatalf("err = %v, want APIError 409", err)
	}
	if hookCalls != 0 {
		t.Error("expiry hook fired for a non-401 status")
	}
	if _, err := store.Load(); err != nil {
		t.Errorf("session after 409 = %v, want intact", err)
	}
}

func TestListEmployeesQueryParameters(t *testing.T) {
	store := testStore(t)
	establishSession(t, store, session.RoleAdmin)

	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(Page{
			Items:      []EmployeeRecord{sampleRecord()},
			PageNumber: 2,
			PageSize:   5,
			TotalCount: 11,
		})
	}))
	defer server.Close()

	client := testClient(t, server, store, nil)
	page, err := client.ListEmployees(context.Background(), 2, 5, ListFilters{
		Search:    "ravi",
		SortBy:    "name",
		SortOrder: "asc",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	for key, want := range map[string]string{
		"pageNumber": "2",
		"pageSize":   "5",
		"search":     "ravi",
		"sortBy":     "name",
		"sortOrder":  "asc",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query[%s] = %v, want %q", key, got, want)
		}
	}
	// Zero-valued filters must be omitted, not sent empty.
	if _, present := gotQuery["status"]; present {
		t.Error("empty status filter was sent")
	}
	if page.TotalCount != 11 {
		t.Errorf("totalCount = %d, want 11", page.TotalCount)
	}
}

func TestUpdateEmployeeSendsFullPayload(t *testing.T) {
	store := testStore(t)
	establishSession(t, store, session.RoleAdmin)

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/admin/employee/e-42" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(sampleRecord())
	}))
	defer server.Close()

	client := testClient(t, server, store, nil)
	record := sampleRecord()
	payload := EmployeePayload{
		ID:          record.ID,
		Name:        record.Name,
		Email:       record.Email,
		Department:  "HR",
		Designation: record.Designation,
		Address:     record.Address,
		Skillset:    record.Skillset,
		Status:      record.Status,
		JoiningDate: record.JoiningDate,
	}
	if _, err := client.UpdateEmployee(context.Background(), record.ID, payload); err != nil {
		t.Fatalf("update: %v", err)
	}

	// The changed field and the unchanged fields must both arrive
	// verbatim — whole-record replacement tolerates no omissions.
	if gotBody["department"] != "HR" {
		t.Errorf("department = %v, want HR", gotBody["department"])
	}
	if gotBody["email"] != "ravi@example.com" {
		t.Errorf("email = %v, want carried verbatim", gotBody["email"])
	}
	if gotBody["address"] != "12 North Street" {
		t.Errorf("address = %v, want carried verbatim", gotBody["address"])
	}
}

func TestRegisterSendsMultipartWithPhoto(t *testing.T) {
	store := testStore(t)

	var gotEmail, gotPhoto string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotEmail = r.FormValue("email")
		file, header, err := r.FormFile("photo")
		if err == nil {
			defer file.Close()
			gotPhoto = header.Filename
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := testClient(t, server, store, nil)
	err := client.Register(context.Background(), RegisterRequest{
		Name:          "Ravi Kumar",
		Email:         "ravi@example.com",
		Password:      "pw",
		Department:    "Engineering",
		Photo:         []byte{0xFF, 0xD8, 0xFF},
		PhotoFilename: "ravi.jpg",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if gotEmail != "ravi@example.com" {
		t.Errorf("email = %q", gotEmail)
	}
	if gotPhoto != "ravi.jpg" {
		t.Errorf("photo filename = %q, want ravi.jpg", gotPhoto)
	}
}

func TestFindEmployeePagesUntilFound(t *testing.T) {
	store := testStore(t)
	establishSession(t, store, session.RoleAdmin)

	// 120 employees across three 50-item pages; the target is on the
	// last page.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageNumber := r.URL.Query().Get("pageNumber")
		page := Page{PageSize: 50, TotalCount: 120}
		switch pageNumber {
		case "1", "2":
			for i := 0; i < 50; i++ {
				page.Items = append(page.Items, EmployeeRecord{ID: "other"})
			}
		case "3":
			target := sampleRecord()
			target.ID = "e-120"
			page.Items = append(page.Items, target)
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := testClient(t, server, store, nil)
	record, err := client.FindEmployee(context.Background(), "e-120")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if record.ID != "e-120" {
		t.Errorf("found %q, want e-120", record.ID)
	}

	if _, err := client.FindEmployee(context.Background(), "nope"); !IsStatus(err, http.StatusNotFound) {
		t.Errorf("missing employee: err = %v, want 404 APIError", err)
	}
}

func TestDecodeTokenClaims(t *testing.T) {
	// Unsigned JWT with sub and exp claims ({"alg":"none"}). The
	// client decodes without verification, so alg is irrelevant.
	const token = "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." +
		"eyJzdWIiOiJ1LTEiLCJleHAiOjE3OTM1MjAwMDB9."

	claims, err := DecodeTokenClaims(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Errorf("subject = %q, want u-1", claims.Subject)
	}
	if claims.ExpiresAt.Unix() != 1793520000 {
		t.Errorf("expiresAt = %v", claims.ExpiresAt)
	}
	if claims.Expired(time.Unix(1793519999, 0)) {
		t.Error("token read as expired before exp")
	}
	if !claims.Expired(time.Unix(1793520001, 0)) {
		t.Error("token not read as expired after exp")
	}

	if _, err := DecodeTokenClaims("opaque-token"); err == nil {
		t.Error("opaque token decoded as JWT")
	}
}
