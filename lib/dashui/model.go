// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staffdeck/staffdeck/lib/config"
	"github.com/staffdeck/staffdeck/lib/draft"
	"github.com/staffdeck/staffdeck/lib/ems"
	"github.com/staffdeck/staffdeck/lib/guard"
	"github.com/staffdeck/staffdeck/lib/paging"
	"github.com/staffdeck/staffdeck/lib/session"
)

// Screen identifies which top-level view is active.
type Screen int

const (
	// ScreenLogin is the unauthenticated entry screen.
	ScreenLogin Screen = iota
	// ScreenAdmin is the administrator employee listing.
	ScreenAdmin
	// ScreenProfile is the employee self-service profile.
	ScreenProfile
)

// FocusRegion identifies where keyboard input routes within the
// admin and profile screens.
type FocusRegion int

const (
	// FocusList means navigation keys move the listing cursor.
	FocusList FocusRegion = iota
	// FocusSearch means keystrokes go to the search input.
	FocusSearch
	// FocusEditForm means keystrokes go to the edit form fields.
	FocusEditForm
	// FocusConfirmDelete means a delete confirmation is pending and
	// only y/n (and escape) are accepted.
	FocusConfirmDelete
)

// noticeFadeDelay is how long status bar notices stay visible.
const noticeFadeDelay = 3 * time.Second

// editTarget selects which endpoint an edit form commit uses.
type editTarget int

const (
	editTargetAdmin   editTarget = iota // PUT /admin/employee/{id}
	editTargetProfile                   // PUT /employee/{id}
)

// Messages delivered back into the update loop by backend commands.

// loginResultMsg reports a completed login attempt.
type loginResultMsg struct {
	resp *ems.AuthResponse
	err  error
}

// pageLoadedMsg carries one page of the employee listing. seq is the
// paging controller sequence stamped when the load started; stale
// responses are dropped.
type pageLoadedMsg struct {
	seq  uint64
	page *ems.Page
	err  error
}

// profileLoadedMsg carries the viewer's own employee record.
type profileLoadedMsg struct {
	record *ems.EmployeeRecord
	err    error
}

// mutationResultMsg reports a completed update, toggle, or delete.
type mutationResultMsg struct {
	action string // "edit", "toggle", "delete", "deactivate"
	err    error
}

// noticeFadeMsg clears the status bar notice after a delay.
type noticeFadeMsg struct{}

// Options configures a dashboard model.
type Options struct {
	// Client is the backend API client. Required.
	Client *ems.Client
	// Store is the session store. Required.
	Store *session.Store
	// PageSize is the listing page size. Required (at least 1).
	PageSize int
	// DeleteAction selects what the delete key does.
	DeleteAction config.DeleteAction
}

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	client *ems.Client
	store  *session.Store
	theme  Theme
	keys   KeyMap

	deleteAction config.DeleteAction

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	screen Screen
	focus  FocusRegion

	// Name shown in the title bar, from the active session.
	operatorName string

	// Login form.
	usernameInput textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loggingIn     bool

	// Admin listing.
	pager        *paging.Controller
	cursor       int
	searchInput  textinput.Model
	statusFilter string
	sortMode     int
	loading      bool

	// Edit form. draft carries the record being edited; editInputs
	// hold the four free-text fields in field order; editStatus is
	// the status selector value.
	editDraft  draft.Draft
	editInputs []textinput.Model
	editFocus  int
	editStatus ems.Status
	target     editTarget

	// Mutation state for toggle and delete, which bypass the draft.
	mutationBusy  bool
	pendingDelete *ems.EmployeeRecord

	// Employee profile.
	profile *ems.EmployeeRecord

	// Status bar notice. noticeIsError selects the color.
	notice        string
	noticeIsError bool

	// initCmd is the first data load, decided by the route guard in
	// NewModel and returned by Init.
	initCmd tea.Cmd
}

// editFields is the field order of the edit form's text inputs. The
// status selector sits after them at index len(editFields).
var editFields = []draft.Field{
	draft.FieldDepartment,
	draft.FieldDesignation,
	draft.FieldAddress,
	draft.FieldSkillset,
}

// sortModes are the states the sort key cycles through.
var sortModes = []ems.ListFilters{
	{},
	{SortBy: "name", SortOrder: "asc"},
	{SortBy: "name", SortOrder: "desc"},
}

// NewModel creates a dashboard model. The initial screen is decided
// by the stored session: absent goes to login, an admin session to
// the listing, an employee session to the profile.
func NewModel(options Options) (Model, error) {
	if options.Client == nil {
		return Model{}, errors.New("dashui: client is required")
	}
	if options.Store == nil {
		return Model{}, errors.New("dashui: session store is required")
	}
	pager, err := paging.NewController(options.Client.ListEmployees, options.PageSize)
	if err != nil {
		return Model{}, err
	}

	deleteAction := options.DeleteAction
	if deleteAction == "" {
		deleteAction = config.DeleteActionDelete
	}

	model := Model{
		client:       options.Client,
		store:        options.Store,
		theme:        DefaultTheme,
		keys:         DefaultKeyMap,
		deleteAction: deleteAction,
		pager:        pager,
	}

	model.usernameInput = textinput.New()
	model.usernameInput.Prompt = ""
	model.usernameInput.Placeholder = "email"
	model.usernameInput.Focus()
	model.passwordInput = textinput.New()
	model.passwordInput.Prompt = ""
	model.passwordInput.Placeholder = "password"
	model.passwordInput.EchoMode = textinput.EchoPassword
	model.searchInput = textinput.New()
	model.searchInput.Prompt = "/"

	sess, err := options.Store.Load()
	if err != nil {
		// Absent or unreadable session: start at login.
		model.screen = ScreenLogin
		model.initCmd = textinput.Blink
		return model, nil
	}

	switch guard.HomeTarget(sess.Role) {
	case guard.TargetAdminHome:
		model.initCmd = model.enterScreen(ScreenAdmin)
	case guard.TargetEmployeeHome:
		model.initCmd = model.enterScreen(ScreenProfile)
	default:
		model.screen = ScreenLogin
		model.initCmd = textinput.Blink
	}
	return model, nil
}

// Init implements tea.Model. Runs the first data load the route
// guard decided on; the login screen just starts the cursor blink.
func (model Model) Init() tea.Cmd {
	return model.initCmd
}

// enterScreen runs the route guard for a protected screen and returns
// the command that loads its data. A denied check redirects instead:
// either to login or to the viewer's own home screen.
func (model *Model) enterScreen(target Screen) tea.Cmd {
	sess, err := model.store.Load()
	var current *session.Session
	if err == nil {
		current = sess
	}

	required := session.RoleEmployee
	if target == ScreenAdmin {
		required = session.RoleAdmin
	}

	decision := guard.Check(current, required)
	if decision.State != guard.Authorized {
		switch decision.Target {
		case guard.TargetAdminHome:
			model.screen = ScreenAdmin
			return model.startPageLoad(1)
		case guard.TargetEmployeeHome:
			model.screen = ScreenProfile
			return model.startProfileLoad()
		default:
			model.resetToLogin("")
			return textinput.Blink
		}
	}

	model.screen = target
	model.operatorName = current.Name
	if target == ScreenAdmin {
		return model.startPageLoad(1)
	}
	return model.startProfileLoad()
}

// startPageLoad begins an asynchronous page fetch stamped with the
// paging controller's next sequence number.
func (model *Model) startPageLoad(pageNumber int) tea.Cmd {
	seq, target := model.pager.Begin(pageNumber)
	filters := model.pager.Filters()
	pageSize := model.pager.PageSize()
	client := model.client
	model.loading = true
	return func() tea.Msg {
		page, err := client.ListEmployees(context.Background(), target, pageSize, filters)
		return pageLoadedMsg{seq: seq, page: page, err: err}
	}
}

// startProfileLoad begins an asynchronous fetch of the viewer's own
// record.
func (model *Model) startProfileLoad() tea.Cmd {
	client := model.client
	model.loading = true
	return func() tea.Msg {
		record, err := client.Profile(context.Background())
		return profileLoadedMsg{record: record, err: err}
	}
}

// Update implements tea.Model. Routes keyboard events based on the
// current screen and focus region; backend results arrive as typed
// messages.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.searchInput.Width = message.Width - 4

	case tea.KeyMsg:
		switch {
		case model.screen == ScreenLogin:
			return model.handleLoginKeys(message)
		case model.focus == FocusSearch:
			return model.handleSearchKeys(message)
		case model.focus == FocusEditForm:
			return model.handleEditKeys(message)
		case model.focus == FocusConfirmDelete:
			return model.handleConfirmDeleteKeys(message)
		case model.screen == ScreenAdmin:
			return model.handleListKeys(message)
		case model.screen == ScreenProfile:
			return model.handleProfileKeys(message)
		}

	case loginResultMsg:
		return model.handleLoginResult(message)

	case pageLoadedMsg:
		return model.handlePageLoaded(message)

	case profileLoadedMsg:
		return model.handleProfileLoaded(message)

	case mutationResultMsg:
		return model.handleMutationResult(message)

	case noticeFadeMsg:
		model.notice = ""
		model.noticeIsError = false
	}
	return model, nil
}

// handleLoginKeys processes keystrokes on the login screen. Tab and
// the arrow keys move between the two inputs; enter submits.
func (model Model) handleLoginKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		model.loginFocus = 1 - model.loginFocus
		if model.loginFocus == 0 {
			model.usernameInput.Focus()
			model.passwordInput.Blur()
		} else {
			model.passwordInput.Focus()
			model.usernameInput.Blur()
		}
		return model, textinput.Blink

	case tea.KeyEnter:
		if model.loggingIn {
			return model, nil
		}
		username := strings.TrimSpace(model.usernameInput.Value())
		password := model.passwordInput.Value()
		if username == "" || password == "" {
			return model.withErrorNotice("email and password are required")
		}
		model.loggingIn = true
		client := model.client
		return model, func() tea.Msg {
			resp, err := client.Login(context.Background(), username, password)
			return loginResultMsg{resp: resp, err: err}
		}
	}

	var cmd tea.Cmd
	if model.loginFocus == 0 {
		model.usernameInput, cmd = model.usernameInput.Update(message)
	} else {
		model.passwordInput, cmd = model.passwordInput.Update(message)
	}
	return model, cmd
}

// handleLoginResult establishes the session on success and routes the
// viewer to their home screen. Login failures stay on the login
// screen: a rejected credential is not an expired session.
func (model Model) handleLoginResult(message loginResultMsg) (tea.Model, tea.Cmd) {
	model.loggingIn = false
	if message.err != nil {
		return model.withErrorNotice(loginFailureText(message.err))
	}

	role, err := session.ParseRole(message.resp.Role)
	if err != nil {
		return model.withErrorNotice(err.Error())
	}
	sess := session.Session{
		Token:  message.resp.Token,
		UserID: message.resp.UserID,
		Name:   message.resp.Name,
		Role:   role,
	}
	if err := model.store.Establish(sess); err != nil {
		return model.withErrorNotice(fmt.Sprintf("saving session: %v", err))
	}

	model.passwordInput.SetValue("")
	model.operatorName = sess.Name

	if role.Is(session.RoleAdmin) {
		model.screen = ScreenAdmin
		model.focus = FocusList
		return model, model.startPageLoad(1)
	}
	model.screen = ScreenProfile
	model.focus = FocusList
	return model, model.startProfileLoad()
}

// loginFailureText maps a login error to the message shown on the
// login screen. Backend rejections surface their own message.
func loginFailureText(err error) string {
	var apiErr *ems.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fmt.Sprintf("login failed: %v", err)
}

// handleListKeys processes keystrokes on the admin listing.
func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := model.pager.Items()

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(items)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.Home):
		model.cursor = 0

	case key.Matches(message, model.keys.End):
		if len(items) > 0 {
			model.cursor = len(items) - 1
		}

	case key.Matches(message, model.keys.PageNext):
		if model.pager.PageNumber() < model.pager.TotalPages() {
			return model, model.startPageLoad(model.pager.PageNumber() + 1)
		}

	case key.Matches(message, model.keys.PagePrev):
		if model.pager.PageNumber() > 1 {
			return model, model.startPageLoad(model.pager.PageNumber() - 1)
		}

	case key.Matches(message, model.keys.Reload):
		return model, model.startPageLoad(model.pager.PageNumber())

	case key.Matches(message, model.keys.SearchActivate):
		model.focus = FocusSearch
		model.searchInput.SetValue(model.pager.Filters().Search)
		model.searchInput.Focus()
		return model, textinput.Blink

	case key.Matches(message, model.keys.FilterStatus):
		return model.cycleStatusFilter()

	case key.Matches(message, model.keys.SortCycle):
		model.sortMode = (model.sortMode + 1) % len(sortModes)
		return model.applyFilters()

	case key.Matches(message, model.keys.FilterClear):
		if model.hasActiveFilters() {
			model.statusFilter = ""
			model.sortMode = 0
			model.searchInput.SetValue("")
			return model.applyFilters()
		}

	case key.Matches(message, model.keys.Edit):
		if record, ok := model.selectedRecord(); ok {
			return model.openEditForm(record, editTargetAdmin)
		}

	case key.Matches(message, model.keys.Toggle):
		if model.mutationBusy {
			return model.withErrorNotice("another change is still in flight")
		}
		if record, ok := model.selectedRecord(); ok {
			return model.startToggle(record)
		}

	case key.Matches(message, model.keys.Delete):
		if model.mutationBusy {
			return model.withErrorNotice("another change is still in flight")
		}
		if record, ok := model.selectedRecord(); ok {
			pending := record
			model.pendingDelete = &pending
			model.focus = FocusConfirmDelete
		}

	case key.Matches(message, model.keys.Logout):
		return model.logout()
	}
	return model, nil
}

// handleSearchKeys processes keystrokes while the search input has
// focus. Enter applies the query; escape cancels without changing the
// active filter.
func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyEscape:
		model.focus = FocusList
		model.searchInput.Blur()
		model.searchInput.SetValue(model.pager.Filters().Search)
		return model, nil

	case tea.KeyEnter:
		model.focus = FocusList
		model.searchInput.Blur()
		return model.applyFilters()
	}

	var cmd tea.Cmd
	model.searchInput, cmd = model.searchInput.Update(message)
	return model, cmd
}

// cycleStatusFilter advances the status filter (all, Active,
// Inactive) and reloads from page one.
func (model Model) cycleStatusFilter() (tea.Model, tea.Cmd) {
	switch model.statusFilter {
	case "":
		model.statusFilter = string(ems.StatusActive)
	case string(ems.StatusActive):
		model.statusFilter = string(ems.StatusInactive)
	default:
		model.statusFilter = ""
	}
	return model.applyFilters()
}

// applyFilters pushes the current search, status filter, and sort
// mode into the paging controller and loads page one.
func (model Model) applyFilters() (tea.Model, tea.Cmd) {
	filters := sortModes[model.sortMode]
	filters.Search = strings.TrimSpace(model.searchInput.Value())
	filters.Status = model.statusFilter
	model.pager.SetFilters(filters)
	model.cursor = 0
	return model, model.startPageLoad(1)
}

// hasActiveFilters reports whether any filter differs from the
// default listing.
func (model Model) hasActiveFilters() bool {
	return model.searchInput.Value() != "" || model.statusFilter != "" || model.sortMode != 0
}

// selectedRecord returns the record under the cursor.
func (model Model) selectedRecord() (ems.EmployeeRecord, bool) {
	items := model.pager.Items()
	if model.cursor < 0 || model.cursor >= len(items) {
		return ems.EmployeeRecord{}, false
	}
	return items[model.cursor], true
}

// openEditForm checks the selected record out into the draft and
// seeds the form inputs.
func (model Model) openEditForm(record ems.EmployeeRecord, target editTarget) (tea.Model, tea.Cmd) {
	if err := model.editDraft.Begin(record); err != nil {
		return model.withErrorNotice(err.Error())
	}

	model.editInputs = make([]textinput.Model, len(editFields))
	for index, field := range editFields {
		input := textinput.New()
		input.Prompt = ""
		input.SetValue(model.editDraft.Value(field))
		model.editInputs[index] = input
	}
	model.editInputs[0].Focus()
	model.editFocus = 0
	model.editStatus = record.Status
	model.target = target
	model.focus = FocusEditForm
	return model, textinput.Blink
}

// editFormSlots counts the focusable form rows: the text fields plus,
// on the admin form only, the trailing status selector. Status is an
// admin-only field; the profile form never shows it.
func (model *Model) editFormSlots() int {
	slots := len(model.editInputs)
	if model.target == editTargetAdmin {
		slots++
	}
	return slots
}

// handleEditKeys processes keystrokes while the edit form has focus.
// Tab and the arrow keys move between fields; on the status selector
// the space key toggles the value; enter commits; escape cancels.
func (model Model) handleEditKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyEscape:
		if err := model.editDraft.Cancel(); err != nil {
			return model.withErrorNotice("change still in flight; wait for it to finish")
		}
		model.focus = FocusList
		model.editInputs = nil
		return model, nil

	case tea.KeyTab, tea.KeyDown:
		model.moveEditFocus(1)
		return model, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		model.moveEditFocus(-1)
		return model, textinput.Blink

	case tea.KeyEnter:
		return model.commitEditForm()
	}

	// The status selector takes space (or t) to toggle; everything
	// else on it is ignored.
	if model.target == editTargetAdmin && model.editFocus == len(model.editInputs) {
		if message.Type == tea.KeySpace || (message.Type == tea.KeyRunes && string(message.Runes) == "t") {
			model.editStatus = model.editStatus.Toggled()
		}
		return model, nil
	}

	var cmd tea.Cmd
	model.editInputs[model.editFocus], cmd = model.editInputs[model.editFocus].Update(message)
	return model, cmd
}

// moveEditFocus shifts form focus by delta, wrapping across the text
// fields and, on the admin form, the trailing status selector.
func (model *Model) moveEditFocus(delta int) {
	fieldCount := model.editFormSlots()
	if model.editFocus < len(model.editInputs) {
		model.editInputs[model.editFocus].Blur()
	}
	model.editFocus = (model.editFocus + delta + fieldCount) % fieldCount
	if model.editFocus < len(model.editInputs) {
		model.editInputs[model.editFocus].Focus()
	}
}

// commitEditForm copies the form values into the draft and starts the
// update call. The form stays open until the result arrives so a
// failure keeps the operator's edits on screen.
func (model Model) commitEditForm() (tea.Model, tea.Cmd) {
	for index, field := range editFields {
		if err := model.editDraft.SetField(field, model.editInputs[index].Value()); err != nil {
			return model.withErrorNotice(err.Error())
		}
	}
	if model.target == editTargetAdmin {
		if err := model.editDraft.SetField(draft.FieldStatus, string(model.editStatus)); err != nil {
			return model.withErrorNotice(err.Error())
		}
	}

	payload, err := model.editDraft.BeginCommit()
	if err != nil {
		return model.withErrorNotice(err.Error())
	}

	client := model.client
	target := model.target
	return model, func() tea.Msg {
		var err error
		if target == editTargetProfile {
			_, err = client.UpdateProfile(context.Background(), payload.ID, payload)
		} else {
			_, err = client.UpdateEmployee(context.Background(), payload.ID, payload)
		}
		return mutationResultMsg{action: "edit", err: err}
	}
}

// handleConfirmDeleteKeys processes the y/n delete confirmation.
func (model Model) handleConfirmDeleteKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	if message.Type == tea.KeyEscape {
		model.pendingDelete = nil
		model.focus = FocusList
		return model, nil
	}
	if message.Type != tea.KeyRunes {
		return model, nil
	}

	switch string(message.Runes) {
	case "y", "Y":
		record := *model.pendingDelete
		model.pendingDelete = nil
		model.focus = FocusList
		return model.startDelete(record)
	case "n", "N":
		model.pendingDelete = nil
		model.focus = FocusList
	}
	return model, nil
}

// startToggle flips the record's status via a full-record update.
func (model Model) startToggle(record ems.EmployeeRecord) (tea.Model, tea.Cmd) {
	model.mutationBusy = true
	payload := draft.ToggleStatusPayload(record)
	client := model.client
	return model, func() tea.Msg {
		_, err := client.UpdateEmployee(context.Background(), payload.ID, payload)
		return mutationResultMsg{action: "toggle", err: err}
	}
}

// startDelete performs the configured delete action: a hard delete,
// or a deactivation that keeps the record with status Inactive.
func (model Model) startDelete(record ems.EmployeeRecord) (tea.Model, tea.Cmd) {
	model.mutationBusy = true
	client := model.client

	if model.deleteAction == config.DeleteActionDeactivate {
		payload := draft.ToggleStatusPayload(record)
		payload.Status = ems.StatusInactive
		return model, func() tea.Msg {
			_, err := client.UpdateEmployee(context.Background(), payload.ID, payload)
			return mutationResultMsg{action: "deactivate", err: err}
		}
	}

	id := record.ID
	return model, func() tea.Msg {
		err := client.DeleteEmployee(context.Background(), id)
		return mutationResultMsg{action: "delete", err: err}
	}
}

// handleMutationResult finishes a mutation: on success the listing
// (or profile) is reloaded so the view reflects the backend rather
// than a locally patched row; on failure the state that produced the
// mutation stays intact for retry.
func (model Model) handleMutationResult(message mutationResultMsg) (tea.Model, tea.Cmd) {
	model.mutationBusy = false
	if message.action == "edit" {
		model.editDraft.FinishCommit(message.err)
	}

	if message.err != nil {
		if errors.Is(message.err, ems.ErrAuthExpired) {
			model.resetToLogin("session expired, sign in again")
			return model, textinput.Blink
		}
		return model.withErrorNotice(message.err.Error())
	}

	var notice string
	switch message.action {
	case "edit":
		model.focus = FocusList
		model.editInputs = nil
		notice = "saved"
	case "toggle":
		notice = "status updated"
	case "delete":
		notice = "employee deleted"
	case "deactivate":
		notice = "employee deactivated"
	}

	model.notice = notice
	model.noticeIsError = false

	reload := model.startPageLoad(model.pager.PageNumber())
	if model.screen == ScreenProfile {
		reload = model.startProfileLoad()
	}
	return model, tea.Batch(reload, noticeFade())
}

// handlePageLoaded applies a completed page fetch. Stale responses
// (superseded by a newer request) are dropped silently.
func (model Model) handlePageLoaded(message pageLoadedMsg) (tea.Model, tea.Cmd) {
	model.loading = false

	if message.err != nil {
		if errors.Is(message.err, ems.ErrAuthExpired) {
			model.resetToLogin("session expired, sign in again")
			return model, textinput.Blink
		}
		return model.withErrorNotice(message.err.Error())
	}

	if err := model.pager.Apply(message.seq, message.page); err != nil {
		// Stale response; the newer load's result is authoritative.
		return model, nil
	}

	if count := len(model.pager.Items()); model.cursor >= count {
		model.cursor = count - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	return model, nil
}

// handleProfileLoaded installs the viewer's record.
func (model Model) handleProfileLoaded(message profileLoadedMsg) (tea.Model, tea.Cmd) {
	model.loading = false

	if message.err != nil {
		if errors.Is(message.err, ems.ErrAuthExpired) {
			model.resetToLogin("session expired, sign in again")
			return model, textinput.Blink
		}
		return model.withErrorNotice(message.err.Error())
	}

	model.profile = message.record
	return model, nil
}

// handleProfileKeys processes keystrokes on the profile screen.
func (model Model) handleProfileKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Edit):
		if model.profile != nil {
			return model.openEditForm(*model.profile, editTargetProfile)
		}

	case key.Matches(message, model.keys.Reload):
		return model, model.startProfileLoad()

	case key.Matches(message, model.keys.Logout):
		return model.logout()
	}
	return model, nil
}

// logout clears the stored session and returns to the login screen.
func (model Model) logout() (tea.Model, tea.Cmd) {
	if err := model.store.Clear(); err != nil {
		return model.withErrorNotice(fmt.Sprintf("clearing session: %v", err))
	}
	model.resetToLogin("signed out")
	return model, textinput.Blink
}

// resetToLogin drops all per-session view state and shows the login
// screen with an optional notice.
func (model *Model) resetToLogin(notice string) {
	model.screen = ScreenLogin
	model.focus = FocusList
	model.operatorName = ""
	model.profile = nil
	model.editInputs = nil
	model.pendingDelete = nil
	model.cursor = 0
	model.loginFocus = 0
	model.usernameInput.SetValue("")
	model.passwordInput.SetValue("")
	model.usernameInput.Focus()
	model.passwordInput.Blur()
	model.notice = notice
	model.noticeIsError = notice != "" && notice != "signed out"
}

// withErrorNotice sets an error notice and schedules its fade.
func (model Model) withErrorNotice(text string) (tea.Model, tea.Cmd) {
	model.notice = text
	model.noticeIsError = true
	return model, noticeFade()
}

func noticeFade() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	switch model.screen {
	case ScreenLogin:
		return model.viewLogin()
	case ScreenProfile:
		if model.focus == FocusEditForm {
			return model.viewEditForm("Edit profile")
		}
		return model.viewProfile()
	default:
		if model.focus == FocusEditForm {
			return model.viewEditForm("Edit employee")
		}
		return model.viewListing()
	}
}

func (model Model) titleBar(text string) string {
	style := lipgloss.NewStyle().
		Foreground(model.theme.TitleForeground).
		Bold(true)
	line := style.Render("Staffdeck")
	if text != "" {
		line += lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" — " + text)
	}
	if model.operatorName != "" {
		line += lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  (" + model.operatorName + ")")
	}
	return line
}

func (model Model) noticeLine() string {
	if model.notice == "" {
		return ""
	}
	color := model.theme.NoticeText
	if model.noticeIsError {
		color = model.theme.ErrorText
	}
	return lipgloss.NewStyle().Foreground(color).Render(model.notice)
}

func (model Model) helpLine(entries ...key.Binding) string {
	parts := make([]string, 0, len(entries))
	for _, binding := range entries {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render(strings.Join(parts, "  ·  "))
}

func (model Model) viewLogin() string {
	var view strings.Builder
	view.WriteString(model.titleBar("sign in"))
	view.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FieldLabel)
	focusedStyle := lipgloss.NewStyle().Foreground(model.theme.FieldFocusedLabel)

	emailLabel := labelStyle.Render("  Email    ")
	passwordLabel := labelStyle.Render("  Password ")
	if model.loginFocus == 0 {
		emailLabel = focusedStyle.Render("> Email    ")
	} else {
		passwordLabel = focusedStyle.Render("> Password ")
	}

	view.WriteString(emailLabel + model.usernameInput.View() + "\n")
	view.WriteString(passwordLabel + model.passwordInput.View() + "\n\n")

	if model.loggingIn {
		view.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("signing in…") + "\n")
	}
	if notice := model.noticeLine(); notice != "" {
		view.WriteString(notice + "\n")
	}
	view.WriteString("\n")
	view.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("Tab switch field  ·  Enter sign in  ·  C-c quit"))
	return view.String()
}

func (model Model) viewListing() string {
	var view strings.Builder
	view.WriteString(model.titleBar("employees"))
	view.WriteString("\n")

	if model.focus == FocusSearch {
		view.WriteString(model.searchInput.View() + "\n")
	} else if description := model.filterDescription(); description != "" {
		view.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(description) + "\n")
	} else {
		view.WriteString("\n")
	}

	renderer := NewListRenderer(model.theme, model.width)
	view.WriteString(renderer.RenderHeader() + "\n")

	items := model.pager.Items()
	if len(items) == 0 {
		empty := "No employees found"
		if model.loading {
			empty = "Loading…"
		}
		view.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" "+empty) + "\n")
	}
	for index, record := range items {
		view.WriteString(renderer.RenderRow(record, index == model.cursor && model.focus != FocusSearch) + "\n")
	}

	view.WriteString("\n")
	view.WriteString(model.statusBar())
	view.WriteString("\n")

	if model.focus == FocusConfirmDelete && model.pendingDelete != nil {
		verb := "Delete"
		if model.deleteAction == config.DeleteActionDeactivate {
			verb = "Deactivate"
		}
		prompt := fmt.Sprintf("%s %s? (y/n)", verb, model.pendingDelete.Name)
		view.WriteString(lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render(prompt))
		return view.String()
	}

	if notice := model.noticeLine(); notice != "" {
		view.WriteString(notice + "\n")
	}
	view.WriteString(model.helpLine(
		model.keys.Down, model.keys.PageNext, model.keys.SearchActivate,
		model.keys.Edit, model.keys.Toggle, model.keys.Delete, model.keys.Quit,
	))
	return view.String()
}

// filterDescription summarizes the active filters for the line under
// the title bar.
func (model Model) filterDescription() string {
	filters := model.pager.Filters()
	var parts []string
	if filters.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", filters.Search))
	}
	if filters.Status != "" {
		parts = append(parts, "status "+filters.Status)
	}
	if filters.SortBy != "" {
		parts = append(parts, "sort "+filters.SortBy+" "+filters.SortOrder)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " · ")
}

func (model Model) statusBar() string {
	text := fmt.Sprintf("page %d of %d · %d employees",
		model.pager.PageNumber(), model.pager.TotalPages(), model.pager.TotalCount())
	if model.loading {
		text += " · loading…"
	}
	if model.mutationBusy {
		text += " · saving…"
	}
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}

func (model Model) viewProfile() string {
	var view strings.Builder
	view.WriteString(model.titleBar("profile"))
	view.WriteString("\n\n")

	if model.profile == nil {
		text := "Loading…"
		if !model.loading {
			text = "Profile unavailable"
		}
		view.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text) + "\n")
	} else {
		labelStyle := lipgloss.NewStyle().Foreground(model.theme.FieldLabel).Width(14)
		valueStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		record := model.profile
		rows := []struct{ label, value string }{
			{"Name", record.Name},
			{"Email", record.Email},
			{"Department", record.Department},
			{"Designation", record.Designation},
			{"Address", record.Address},
			{"Skillset", record.Skillset},
			{"Joined", record.JoiningDate},
			{"Status", string(record.Status)},
		}
		for _, row := range rows {
			view.WriteString(labelStyle.Render(row.label) + valueStyle.Render(row.value) + "\n")
		}
	}

	view.WriteString("\n")
	if notice := model.noticeLine(); notice != "" {
		view.WriteString(notice + "\n")
	}
	view.WriteString(model.helpLine(model.keys.Edit, model.keys.Reload, model.keys.Logout, model.keys.Quit))
	return view.String()
}

func (model Model) viewEditForm(title string) string {
	var view strings.Builder
	view.WriteString(model.titleBar(title))
	view.WriteString("\n\n")

	record := model.editDraft.Record()
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	view.WriteString(faint.Render(fmt.Sprintf("  %s · %s", record.Name, record.Email)) + "\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FieldLabel).Width(14)
	focusedStyle := lipgloss.NewStyle().Foreground(model.theme.FieldFocusedLabel).Width(14)

	labels := []string{"Department", "Designation", "Address", "Skillset"}
	for index, input := range model.editInputs {
		style := labelStyle
		prefix := "  "
		if index == model.editFocus {
			style = focusedStyle
			prefix = "> "
		}
		view.WriteString(prefix + style.Render(labels[index]) + input.View() + "\n")
	}

	if model.target == editTargetAdmin {
		statusStyle := labelStyle
		statusPrefix := "  "
		if model.editFocus == len(model.editInputs) {
			statusStyle = focusedStyle
			statusPrefix = "> "
		}
		statusValue := lipgloss.NewStyle().
			Foreground(model.theme.StatusColor(model.editStatus)).
			Render(string(model.editStatus))
		view.WriteString(statusPrefix + statusStyle.Render("Status") + statusValue + "\n")
	}
	view.WriteString("\n")

	if model.editDraft.Busy() {
		view.WriteString(faint.Render("saving…") + "\n")
	}
	if notice := model.noticeLine(); notice != "" {
		view.WriteString(notice + "\n")
	}
	help := "Tab next field  ·  Enter save  ·  Esc cancel"
	if model.target == editTargetAdmin {
		help = "Tab next field  ·  Space toggle status  ·  Enter save  ·  Esc cancel"
	}
	view.WriteString(lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help))
	return view.String()
}
