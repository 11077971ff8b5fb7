// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashui implements the interactive terminal dashboard: a
// bubbletea application covering login, the administrator employee
// listing, and the employee self-service profile.
//
// The model owns no HTTP machinery of its own. Data flows through an
// [ems.Client]; paging state lives in a [paging.Controller]; edits
// accumulate in a [draft.Draft]. Every protected screen runs a
// [guard.Check] before its first fetch, and any backend result that
// reports [ems.ErrAuthExpired] drops the session and returns the
// viewer to the login screen.
//
// All backend calls run as tea.Cmd functions on background
// goroutines; results re-enter the single update loop as typed
// messages (pageLoadedMsg, mutationResultMsg, loginResultMsg), so the
// model itself needs no locking. Page loads carry a sequence number
// from the paging controller and stale responses are discarded.
package dashui
