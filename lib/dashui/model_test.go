// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/staffdeck/staffdeck/lib/config"
	"github.com/staffdeck/staffdeck/lib/ems"
	"github.com/staffdeck/staffdeck/lib/session"
)

// fakeBackend is an in-memory employee management API for driving the
// model through a real ems.Client.
type fakeBackend struct {
	mu        sync.Mutex
	employees []ems.EmployeeRecord
	updates   []ems.EmployeePayload
	deleted   []string

	// When set, the admin listing responds 401 regardless of session.
	expireSessions bool
}

func newFakeBackend(count int) *fakeBackend {
	backend := &fakeBackend{}
	for i := 1; i <= count; i++ {
		backend.employees = append(backend.employees, ems.EmployeeRecord{
			ID:          fmt.Sprintf("emp-%d", i),
			Name:        fmt.Sprintf("Employee %02d", i),
			Email:       fmt.Sprintf("employee%02d@example.com", i),
			Department:  "Engineering",
			Designation: "Engineer",
			Address:     "1 Main St",
			Skillset:    "Go",
			Status:      ems.StatusActive,
			JoiningDate: "2023-01-15",
		})
	}
	return backend
}

func (backend *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(request.Body).Decode(&body)
		switch {
		case body.Username == "admin@example.com" && body.Password == "secret":
			json.NewEncoder(writer).Encode(ems.AuthResponse{
				Token: "admin-token", UserID: "u-admin", Name: "Ada Admin", Role: "admin",
			})
		case body.Username == "jane@example.com" && body.Password == "secret":
			json.NewEncoder(writer).Encode(ems.AuthResponse{
				Token: "emp-token", UserID: "u-jane", Name: "Jane Doe", Role: "employee",
			})
		default:
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"message": "Invalid credentials"})
		}
	})

	mux.HandleFunc("GET /admin/employees", func(writer http.ResponseWriter, request *http.Request) {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		if backend.expireSessions || request.Header.Get("Authorization") == "" {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}

		query := request.URL.Query()
		pageNumber, _ := strconv.Atoi(query.Get("pageNumber"))
		pageSize, _ := strconv.Atoi(query.Get("pageSize"))
		search := query.Get("search")
		status := query.Get("status")

		var filtered []ems.EmployeeRecord
		for _, record := range backend.employees {
			if search != "" && !strings.Contains(strings.ToLower(record.Name), strings.ToLower(search)) {
				continue
			}
			if status != "" && string(record.Status) != status {
				continue
			}
			filtered = append(filtered, record)
		}

		start := (pageNumber - 1) * pageSize
		end := start + pageSize
		if start > len(filtered) {
			start = len(filtered)
		}
		if end > len(filtered) {
			end = len(filtered)
		}
		json.NewEncoder(writer).Encode(ems.Page{
			Items:      filtered[start:end],
			PageNumber: pageNumber,
			PageSize:   pageSize,
			TotalCount: len(filtered),
		})
	})

	mux.HandleFunc("PUT /admin/employee/{id}", func(writer http.ResponseWriter, request *http.Request) {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		var payload ems.EmployeePayload
		json.NewDecoder(request.Body).Decode(&payload)
		backend.updates = append(backend.updates, payload)
		for index, record := range backend.employees {
			if record.ID == payload.ID {
				backend.employees[index] = ems.EmployeeRecord{
					ID: payload.ID, Name: payload.Name, Email: payload.Email,
					Department: payload.Department, Designation: payload.Designation,
					Address: payload.Address, Skillset: payload.Skillset,
					Status: payload.Status, JoiningDate: payload.JoiningDate,
				}
			}
		}
		json.NewEncoder(writer).Encode(backend.employees[0])
	})

	mux.HandleFunc("DELETE /admin/employee/{id}", func(writer http.ResponseWriter, request *http.Request) {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		id := request.PathValue("id")
		backend.deleted = append(backend.deleted, id)
		for index, record := range backend.employees {
			if record.ID == id {
				backend.employees = append(backend.employees[:index], backend.employees[index+1:]...)
				break
			}
		}
		writer.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /employee/profile", func(writer http.ResponseWriter, request *http.Request) {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		json.NewEncoder(writer).Encode(backend.employees[0])
	})

	return mux
}

// testModel wires a model to a fake backend. withSession pre-seeds an
// admin session so the model starts on the listing.
func testModel(t *testing.T, backend *fakeBackend, withSession bool) (Model, *session.Store) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if withSession {
		err := store.Establish(session.Session{
			Token: "admin-token", UserID: "u-admin", Name: "Ada Admin", Role: session.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("establishing session: %v", err)
		}
	}

	client, err := ems.New(ems.ClientConfig{BaseURL: server.URL, Store: store})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	model, err := NewModel(Options{
		Client:   client,
		Store:    store,
		PageSize: 5,
	})
	if err != nil {
		t.Fatalf("creating model: %v", err)
	}
	return model, store
}

// drive runs a command and feeds every resulting message back through
// Update, repeating until no further commands fire. Timer commands
// (notice fades) that do not complete within the window are left
// behind; everything else (backend calls) completes quickly against
// the httptest server.
func drive(t *testing.T, model Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, message := range runCommands(cmd) {
		updated, next := model.Update(message)
		model = updated.(Model)
		model = drive(t, model, next)
	}
	return model
}

// runCommands executes a command tree concurrently and collects the
// messages that arrive promptly. Timer commands (notice fades) never
// complete within the window and are abandoned; backend calls against
// the httptest server finish in milliseconds.
func runCommands(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	results := make(chan tea.Msg, 16)
	pending := 0
	start := func(c tea.Cmd) {
		if c == nil {
			return
		}
		pending++
		go func() { results <- c() }()
	}
	start(cmd)

	var messages []tea.Msg
	deadline := time.After(500 * time.Millisecond)
	for collected := 0; collected < pending; collected++ {
		select {
		case message := <-results:
			if batch, isBatch := message.(tea.BatchMsg); isBatch {
				for _, sub := range batch {
					start(sub)
				}
				continue
			}
			if message != nil {
				messages = append(messages, message)
			}
		case <-deadline:
			return messages
		}
	}
	return messages
}

func pressKey(t *testing.T, model Model, runes string) Model {
	t.Helper()
	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)})
	return drive(t, updated.(Model), cmd)
}

func press(t *testing.T, model Model, keyType tea.KeyType) Model {
	t.Helper()
	updated, cmd := model.Update(tea.KeyMsg{Type: keyType})
	return drive(t, updated.(Model), cmd)
}

func sized(t *testing.T, model Model) Model {
	t.Helper()
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

func TestModelStartsAtLoginWithoutSession(t *testing.T) {
	model, _ := testModel(t, newFakeBackend(3), false)
	if model.screen != ScreenLogin {
		t.Fatalf("screen = %d, want ScreenLogin", model.screen)
	}

	model = sized(t, model)
	view := model.View()
	if !strings.Contains(view, "Email") || !strings.Contains(view, "Password") {
		t.Errorf("login view missing form fields:\n%s", view)
	}
}

func TestLoginFlowReachesListing(t *testing.T) {
	model, store := testModel(t, newFakeBackend(3), false)
	model = sized(t, model)

	model.usernameInput.SetValue("admin@example.com")
	model.passwordInput.SetValue("secret")
	model = press(t, model, tea.KeyEnter)

	if model.screen != ScreenAdmin {
		t.Fatalf("screen after login = %d, want ScreenAdmin", model.screen)
	}
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("session not established: %v", err)
	}
	if sess.Name != "Ada Admin" || !sess.Role.Is(session.RoleAdmin) {
		t.Fatalf("unexpected session: %+v", sess)
	}

	view := model.View()
	if !strings.Contains(view, "Employee 01") {
		t.Errorf("listing missing first employee:\n%s", view)
	}
	if !strings.Contains(view, "page 1 of 1") {
		t.Errorf("status bar missing page position:\n%s", view)
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	model, store := testModel(t, newFakeBackend(3), false)
	model = sized(t, model)

	model.usernameInput.SetValue("admin@example.com")
	model.passwordInput.SetValue("wrong")
	model = press(t, model, tea.KeyEnter)

	if model.screen != ScreenLogin {
		t.Fatalf("screen = %d, want ScreenLogin after rejected login", model.screen)
	}
	if !strings.Contains(model.View(), "Invalid credentials") {
		t.Errorf("view should show the backend's rejection message:\n%s", model.View())
	}
	if _, err := store.Load(); !errors.Is(err, session.ErrAbsent) {
		t.Errorf("no session should be stored after rejected login, got %v", err)
	}
}

func TestAdminListingPaging(t *testing.T) {
	model, _ := testModel(t, newFakeBackend(12), true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	if got := len(model.pager.Items()); got != 5 {
		t.Fatalf("page 1 items = %d, want 5", got)
	}
	if got := model.pager.TotalPages(); got != 3 {
		t.Fatalf("total pages = %d, want 3", got)
	}

	// Next page.
	model = pressKey(t, model, "n")
	if got := model.pager.PageNumber(); got != 2 {
		t.Fatalf("page after n = %d, want 2", got)
	}
	if !strings.Contains(model.View(), "Employee 06") {
		t.Errorf("page 2 should show Employee 06")
	}

	// Previous page.
	model = pressKey(t, model, "p")
	if got := model.pager.PageNumber(); got != 1 {
		t.Fatalf("page after p = %d, want 1", got)
	}

	// Prev at page one is a no-op.
	model = pressKey(t, model, "p")
	if got := model.pager.PageNumber(); got != 1 {
		t.Fatalf("page after p at first page = %d, want 1", got)
	}
}

func TestCursorNavigation(t *testing.T) {
	model, _ := testModel(t, newFakeBackend(5), true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	if model.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", model.cursor)
	}
	model = pressKey(t, model, "j")
	model = pressKey(t, model, "j")
	if model.cursor != 2 {
		t.Fatalf("cursor after jj = %d, want 2", model.cursor)
	}
	model = pressKey(t, model, "k")
	if model.cursor != 1 {
		t.Fatalf("cursor after k = %d, want 1", model.cursor)
	}
	model = pressKey(t, model, "G")
	if model.cursor != 4 {
		t.Fatalf("cursor after G = %d, want 4", model.cursor)
	}
	model = pressKey(t, model, "g")
	if model.cursor != 0 {
		t.Fatalf("cursor after g = %d, want 0", model.cursor)
	}
}

func TestSearchFilterReloadsFromPageOne(t *testing.T) {
	backend := newFakeBackend(12)
	backend.employees[7].Name = "Priya Nair"
	model, _ := testModel(t, backend, true)
	model = sized(t, model)
	model = drive(t, model, model.Init())
	model = pressKey(t, model, "n") // move off page one first

	model = pressKey(t, model, "/")
	if model.focus != FocusSearch {
		t.Fatalf("focus = %d, want FocusSearch", model.focus)
	}
	model = pressKey(t, model, "priya")
	model = press(t, model, tea.KeyEnter)

	if got := model.pager.PageNumber(); got != 1 {
		t.Fatalf("page after search = %d, want 1", got)
	}
	items := model.pager.Items()
	if len(items) != 1 || items[0].Name != "Priya Nair" {
		t.Fatalf("search results = %+v, want just Priya Nair", items)
	}
	if !strings.Contains(model.View(), `search "priya"`) {
		t.Errorf("view should describe the active search filter")
	}
}

func TestStatusFilterCycles(t *testing.T) {
	backend := newFakeBackend(4)
	backend.employees[1].Status = ems.StatusInactive
	model, _ := testModel(t, backend, true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	model = pressKey(t, model, "f") // Active only
	if got := len(model.pager.Items()); got != 3 {
		t.Fatalf("active-only items = %d, want 3", got)
	}
	model = pressKey(t, model, "f") // Inactive only
	if got := len(model.pager.Items()); got != 1 {
		t.Fatalf("inactive-only items = %d, want 1", got)
	}
	model = pressKey(t, model, "f") // back to all
	if got := len(model.pager.Items()); got != 4 {
		t.Fatalf("unfiltered items = %d, want 4", got)
	}
}

func TestToggleStatusSendsFullRecord(t *testing.T) {
	backend := newFakeBackend(3)
	model, _ := testModel(t, backend, true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	model = pressKey(t, model, "j") // select emp-2
	model = pressKey(t, model, "t")

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if len(backend.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(backend.updates))
	}
	payload := backend.updates[0]
	if payload.ID != "emp-2" {
		t.Fatalf("toggled ID = %s, want emp-2", payload.ID)
	}
	if payload.Status != ems.StatusInactive {
		t.Fatalf("toggled status = %s, want Inactive", payload.Status)
	}
	// The full record travels with the toggle; the backend replaces
	// the whole row.
	if payload.Name != "Employee 02" || payload.Email != "employee02@example.com" ||
		payload.Department != "Engineering" || payload.JoiningDate != "2023-01-15" {
		t.Fatalf("toggle payload dropped fields: %+v", payload)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	backend := newFakeBackend(3)
	model, _ := testModel(t, backend, true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	model = pressKey(t, model, "d")
	if model.focus != FocusConfirmDelete {
		t.Fatalf("focus = %d, want FocusConfirmDelete", model.focus)
	}
	if !strings.Contains(model.View(), "Delete Employee 01? (y/n)") {
		t.Errorf("view should show confirmation prompt:\n%s", model.View())
	}

	// Declining leaves everything alone.
	model = pressKey(t, model, "n")
	if model.focus != FocusList {
		t.Fatalf("focus after decline = %d, want FocusList", model.focus)
	}
	backend.mu.Lock()
	deleted := len(backend.deleted)
	backend.mu.Unlock()
	if deleted != 0 {
		t.Fatalf("deleted = %d after decline, want 0", deleted)
	}

	// Confirming deletes and reloads.
	model = pressKey(t, model, "d")
	model = pressKey(t, model, "y")
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if len(backend.deleted) != 1 || backend.deleted[0] != "emp-1" {
		t.Fatalf("deleted = %v, want [emp-1]", backend.deleted)
	}
}

func TestDeleteActionDeactivate(t *testing.T) {
	backend := newFakeBackend(3)
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Establish(session.Session{
		Token: "admin-token", UserID: "u-admin", Name: "Ada Admin", Role: session.RoleAdmin,
	}); err != nil {
		t.Fatalf("establishing session: %v", err)
	}
	client, err := ems.New(ems.ClientConfig{BaseURL: server.URL, Store: store})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	model, err := NewModel(Options{
		Client: client, Store: store, PageSize: 5,
		DeleteAction: config.DeleteActionDeactivate,
	})
	if err != nil {
		t.Fatalf("creating model: %v", err)
	}
	model = sized(t, model)
	model = drive(t, model, model.Init())

	model = pressKey(t, model, "d")
	if !strings.Contains(model.View(), "Deactivate Employee 01? (y/n)") {
		t.Errorf("prompt should say Deactivate:\n%s", model.View())
	}
	model = pressKey(t, model, "y")

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if len(backend.deleted) != 0 {
		t.Fatalf("deactivate mode must not hard-delete, got %v", backend.deleted)
	}
	if len(backend.updates) != 1 || backend.updates[0].Status != ems.StatusInactive {
		t.Fatalf("expected one deactivating update, got %+v", backend.updates)
	}
}

func TestEditFormCommit(t *testing.T) {
	backend := newFakeBackend(3)
	model, _ := testModel(t, backend, true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	model = pressKey(t, model, "e")
	if model.focus != FocusEditForm {
		t.Fatalf("focus = %d, want FocusEditForm", model.focus)
	}

	// Change designation (second field) and leave the rest alone.
	model = press(t, model, tea.KeyTab)
	model.editInputs[1].SetValue("Staff Engineer")
	model = press(t, model, tea.KeyEnter)

	if model.focus != FocusList {
		t.Fatalf("focus after successful commit = %d, want FocusList", model.focus)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	if len(backend.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(backend.updates))
	}
	payload := backend.updates[0]
	if payload.Designation != "Staff Engineer" {
		t.Fatalf("designation = %q, want Staff Engineer", payload.Designation)
	}
	// Untouched fields carry through from the original record.
	if payload.Name != "Employee 01" || payload.Department != "Engineering" ||
		payload.Address != "1 Main St" || payload.JoiningDate != "2023-01-15" {
		t.Fatalf("commit payload dropped fields: %+v", payload)
	}
}

func TestEditFormCancel(t *testing.T) {
	backend := newFakeBackend(3)
	model, _ := testModel(t, backend, true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	model = pressKey(t, model, "e")
	model.editInputs[0].SetValue("Changed")
	model = press(t, model, tea.KeyEscape)

	if model.focus != FocusList {
		t.Fatalf("focus after cancel = %d, want FocusList", model.focus)
	}
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if len(backend.updates) != 0 {
		t.Fatalf("cancel must not send an update, got %+v", backend.updates)
	}
}

func TestSessionExpiryReturnsToLogin(t *testing.T) {
	backend := newFakeBackend(3)
	model, store := testModel(t, backend, true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	backend.mu.Lock()
	backend.expireSessions = true
	backend.mu.Unlock()

	model = pressKey(t, model, "r")

	if model.screen != ScreenLogin {
		t.Fatalf("screen = %d, want ScreenLogin after 401", model.screen)
	}
	if _, err := store.Load(); !errors.Is(err, session.ErrAbsent) {
		t.Errorf("session should be cleared after 401, got %v", err)
	}
	if !strings.Contains(model.View(), "session expired") {
		t.Errorf("view should explain the forced logout:\n%s", model.View())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	model, store := testModel(t, newFakeBackend(3), true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	model = press(t, model, tea.KeyCtrlL)

	if model.screen != ScreenLogin {
		t.Fatalf("screen = %d, want ScreenLogin after logout", model.screen)
	}
	if _, err := store.Load(); !errors.Is(err, session.ErrAbsent) {
		t.Errorf("session should be cleared by logout, got %v", err)
	}
}

func TestStalePageResponseDropped(t *testing.T) {
	model, _ := testModel(t, newFakeBackend(12), true)
	model = sized(t, model)
	model = drive(t, model, model.Init())

	// Start a load of page 2 but hold its response; then complete a
	// load of page 3. The page 2 response must not win.
	slowCmd := model.startPageLoad(2)
	slowMsg := slowCmd()

	fastCmd := model.startPageLoad(3)
	updated, _ := model.Update(fastCmd())
	model = updated.(Model)
	if got := model.pager.PageNumber(); got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}

	updated, _ = model.Update(slowMsg)
	model = updated.(Model)
	if got := model.pager.PageNumber(); got != 3 {
		t.Fatalf("stale response overwrote page: %d, want 3", got)
	}
}

func TestEmployeeSessionLandsOnProfile(t *testing.T) {
	backend := newFakeBackend(3)
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Establish(session.Session{
		Token: "emp-token", UserID: "u-jane", Name: "Jane Doe", Role: session.RoleEmployee,
	}); err != nil {
		t.Fatalf("establishing session: %v", err)
	}
	client, err := ems.New(ems.ClientConfig{BaseURL: server.URL, Store: store})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	model, err := NewModel(Options{Client: client, Store: store, PageSize: 5})
	if err != nil {
		t.Fatalf("creating model: %v", err)
	}
	if model.screen != ScreenProfile {
		t.Fatalf("screen = %d, want ScreenProfile for employee session", model.screen)
	}

	model = sized(t, model)
	model = drive(t, model, model.Init())
	view := model.View()
	if !strings.Contains(view, "Employee 01") || !strings.Contains(view, "employee01@example.com") {
		t.Errorf("profile view missing record fields:\n%s", view)
	}
}

func TestProfileEditFormHasNoStatusField(t *testing.T) {
	backend := newFakeBackend(3)
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Establish(session.Session{
		Token: "emp-token", UserID: "u-jane", Name: "Jane Doe", Role: session.RoleEmployee,
	}); err != nil {
		t.Fatalf("establishing session: %v", err)
	}
	client, err := ems.New(ems.ClientConfig{BaseURL: server.URL, Store: store})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	model, err := NewModel(Options{Client: client, Store: store, PageSize: 5})
	if err != nil {
		t.Fatalf("creating model: %v", err)
	}
	model = sized(t, model)
	model = drive(t, model, model.Init())

	model = pressKey(t, model, "e")
	if model.focus != FocusEditForm {
		t.Fatalf("focus = %d, want FocusEditForm after e", model.focus)
	}

	view := model.View()
	if strings.Contains(view, "toggle status") {
		t.Errorf("profile edit help offers the status toggle:\n%s", view)
	}
	if strings.Contains(view, "Status") {
		t.Errorf("profile edit form shows the status field:\n%s", view)
	}

	// Focus wraps across the text fields only; four tabs land back on
	// the first one, never on a status selector slot.
	for i := 0; i < len(model.editInputs); i++ {
		model = press(t, model, tea.KeyTab)
	}
	if model.editFocus != 0 {
		t.Errorf("editFocus = %d after wrapping, want 0", model.editFocus)
	}
}
