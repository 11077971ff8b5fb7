// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/staffdeck/staffdeck/lib/draft"
	"github.com/staffdeck/staffdeck/lib/ems"
)

// printRecord writes one employee record as an aligned field list.
func printRecord(record *ems.EmployeeRecord) {
	writer := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "id:\t%s\n", record.ID)
	fmt.Fprintf(writer, "name:\t%s\n", record.Name)
	fmt.Fprintf(writer, "email:\t%s\n", record.Email)
	fmt.Fprintf(writer, "department:\t%s\n", record.Department)
	fmt.Fprintf(writer, "designation:\t%s\n", record.Designation)
	fmt.Fprintf(writer, "address:\t%s\n", record.Address)
	fmt.Fprintf(writer, "skillset:\t%s\n", record.Skillset)
	fmt.Fprintf(writer, "status:\t%s\n", record.Status)
	fmt.Fprintf(writer, "joined:\t%s\n", record.JoiningDate)
	if record.PhotoPath != "" {
		fmt.Fprintf(writer, "photo:\t%s\n", record.PhotoPath)
	}
	writer.Flush()
}

// recordEdits holds the mutable-field flag values for update commands.
// Only fields whose flags were actually set are applied.
type recordEdits struct {
	department  string
	designation string
	address     string
	skillset    string
	status      string
}

// bindEditFlags registers the shared mutable-field flags on flagSet.
func (edits *recordEdits) bindEditFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&edits.department, "department", "", "new department")
	flagSet.StringVar(&edits.designation, "designation", "", "new job title")
	flagSet.StringVar(&edits.address, "address", "", "new postal address")
	flagSet.StringVar(&edits.skillset, "skillset", "", "new comma-separated skills")
}

// apply opens a draft over record, applies every edit whose flag was
// provided (pflag's Changed, so an explicitly empty value still counts
// as an edit), and returns the full replacement payload.
func (edits *recordEdits) apply(record *ems.EmployeeRecord, changed func(name string) bool) (ems.EmployeePayload, bool, error) {
	var editSession draft.Draft
	if err := editSession.Begin(*record); err != nil {
		return ems.EmployeePayload{}, false, err
	}

	flagValues := map[draft.Field]string{
		draft.FieldDepartment:  edits.department,
		draft.FieldDesignation: edits.designation,
		draft.FieldAddress:     edits.address,
		draft.FieldSkillset:    edits.skillset,
		draft.FieldStatus:      edits.status,
	}

	edited := false
	for field, value := range flagValues {
		if !changed(string(field)) {
			continue
		}
		if err := editSession.SetField(field, value); err != nil {
			return ems.EmployeePayload{}, false, err
		}
		edited = true
	}
	return editSession.Payload(), edited, nil
}

// setStatusPayload builds a replacement payload for record with its
// status forced to status and everything else unchanged.
func setStatusPayload(record *ems.EmployeeRecord, status ems.Status) (ems.EmployeePayload, error) {
	var editSession draft.Draft
	if err := editSession.Begin(*record); err != nil {
		return ems.EmployeePayload{}, err
	}
	if err := editSession.SetField(draft.FieldStatus, string(status)); err != nil {
		return ems.EmployeePayload{}, err
	}
	return editSession.Payload(), nil
}
