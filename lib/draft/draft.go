// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package draft holds the in-progress edits for one employee record.
// A draft is opened from a listing row, edited field by field, and
// either cancelled or committed. The backend's update endpoint is a
// full replace, so the draft merges the edited fields over the fields
// the editor never touches (identity, email, joining date) and emits a
// complete payload.
//
// At most one commit may be in flight per draft. BeginCommit marks the
// draft busy and a second BeginCommit fails with ErrCommitInFlight
// until FinishCommit reports the outcome.
package draft

import (
	"errors"
	"fmt"

	"github.com/staffdeck/staffdeck/lib/ems"
)

// ErrCommitInFlight reports a commit attempted while a previous commit
// for the same draft has not finished.
var ErrCommitInFlight = errors.New("draft: commit already in flight")

// State is the draft lifecycle position.
type State int

const (
	// Viewing means no edit is open.
	Viewing State = iota
	// Editing means a record is checked out and fields may change.
	Editing
)

// Field names an editable attribute of a draft.
type Field string

// The editable fields. Identity fields (ID, name, email, joining
// date) are not listed; they pass through to the payload unchanged.
const (
	FieldDepartment  Field = "department"
	FieldDesignation Field = "designation"
	FieldAddress     Field = "address"
	FieldSkillset    Field = "skillset"
	FieldStatus      Field = "status"
)

// Draft is the edit session for one record. Not safe for concurrent
// use.
type Draft struct {
	state State
	base  ems.EmployeeRecord

	department  string
	designation string
	address     string
	skillset    string
	status      ems.Status

	busy bool
}

// State reports the lifecycle position.
func (draft *Draft) State() State { return draft.state }

// Busy reports whether a commit is in flight.
func (draft *Draft) Busy() bool { return draft.busy }

// Record returns the record the draft was opened from.
func (draft *Draft) Record() ems.EmployeeRecord { return draft.base }

// Begin checks out a record for editing, seeding every editable field
// from the record's current values. Beginning while a commit is in
// flight fails; beginning over an existing open edit replaces it.
func (draft *Draft) Begin(record ems.EmployeeRecord) error {
	if draft.busy {
		return ErrCommitInFlight
	}
	draft.state = Editing
	draft.base = record
	draft.department = record.Department
	draft.designation = record.Designation
	draft.address = record.Address
	draft.skillset = record.Skillset
	draft.status = record.Status
	return nil
}

// SetField updates one editable field. The status field accepts only
// the two known values.
func (draft *Draft) SetField(field Field, value string) error {
	if draft.state != Editing {
		return errors.New("draft: no edit in progress")
	}
	switch field {
	case FieldDepartment:
		draft.department = value
	case FieldDesignation:
		draft.designation = value
	case FieldAddress:
		draft.address = value
	case FieldSkillset:
		draft.skillset = value
	case FieldStatus:
		status, err := ems.ParseStatus(value)
		if err != nil {
			return err
		}
		draft.status = status
	default:
		return fmt.Errorf("draft: unknown field %q", field)
	}
	return nil
}

// Value reads the current draft value of one editable field.
func (draft *Draft) Value(field Field) string {
	switch field {
	case FieldDepartment:
		return draft.department
	case FieldDesignation:
		return draft.designation
	case FieldAddress:
		return draft.address
	case FieldSkillset:
		return draft.skillset
	case FieldStatus:
		return string(draft.status)
	default:
		return ""
	}
}

// Payload assembles the full-replace update body: edited fields from
// the draft, untouched fields verbatim from the checked-out record.
func (draft *Draft) Payload() ems.EmployeePayload {
	return ems.EmployeePayload{
		ID:          draft.base.ID,
		Name:        draft.base.Name,
		Email:       draft.base.Email,
		JoiningDate: draft.base.JoiningDate,
		Department:  draft.department,
		Designation: draft.designation,
		Address:     draft.address,
		Skillset:    draft.skillset,
		Status:      draft.status,
	}
}

// Cancel abandons the open edit. Cancelling mid-commit is refused;
// the commit's outcome must be observed first.
func (draft *Draft) Cancel() error {
	if draft.busy {
		return ErrCommitInFlight
	}
	draft.state = Viewing
	draft.base = ems.EmployeeRecord{}
	return nil
}

// BeginCommit marks the draft busy and returns the payload to send.
// The draft stays in Editing until FinishCommit so a failed commit
// keeps the operator's edits on screen.
func (draft *Draft) BeginCommit() (ems.EmployeePayload, error) {
	if draft.state != Editing {
		return ems.EmployeePayload{}, errors.New("draft: no edit in progress")
	}
	if draft.busy {
		return ems.EmployeePayload{}, ErrCommitInFlight
	}
	draft.busy = true
	return draft.Payload(), nil
}

// FinishCommit records the commit outcome. Success closes the edit;
// failure keeps it open with all edits intact for retry.
func (draft *Draft) FinishCommit(err error) {
	draft.busy = false
	if err == nil {
		draft.state = Viewing
		draft.base = ems.EmployeeRecord{}
	}
}

// ToggleStatusPayload builds the full-replace payload that flips a
// record's status and changes nothing else.
func ToggleStatusPayload(record ems.EmployeeRecord) ems.EmployeePayload {
	return ems.EmployeePayload{
		ID:          record.ID,
		Name:        record.Name,
		Email:       record.Email,
		JoiningDate: record.JoiningDate,
		Department:  record.Department,
		Designation: record.Designation,
		Address:     record.Address,
		Skillset:    record.Skillset,
		Status:      record.Status.Toggled(),
	}
}
