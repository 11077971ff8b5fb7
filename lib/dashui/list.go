// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/staffdeck/staffdeck/lib/ems"
)

// Fixed column widths for the employee table. The name column fills
// remaining space; all others are fixed.
const (
	columnWidthEmail       = 28
	columnWidthDepartment  = 16
	columnWidthDesignation = 18
	columnWidthStatus      = 10

	minNameWidth = 12
)

// ListRenderer handles the table-style rendering of employee rows
// within a given width.
type ListRenderer struct {
	theme Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// nameWidth returns the width available for the name column after the
// fixed columns are laid out.
func (renderer ListRenderer) nameWidth() int {
	width := renderer.width - columnWidthEmail - columnWidthDepartment -
		columnWidthDesignation - columnWidthStatus - 1 // leading indent
	if width < minNameWidth {
		width = minNameWidth
	}
	return width
}

// RenderHeader renders the column header row.
func (renderer ListRenderer) RenderHeader() string {
	style := lipgloss.NewStyle().
		Foreground(renderer.theme.HeaderForeground).
		Bold(true)
	row := " " +
		pad("NAME", renderer.nameWidth()) +
		pad("EMAIL", columnWidthEmail) +
		pad("DEPARTMENT", columnWidthDepartment) +
		pad("DESIGNATION", columnWidthDesignation) +
		pad("STATUS", columnWidthStatus)
	return style.Render(row)
}

// RenderRow renders a single employee as a formatted table row. The
// selected flag controls whether the row gets highlight styling.
//
// Row layout: indent + name + email + department + designation + status
func (renderer ListRenderer) RenderRow(record ems.EmployeeRecord, selected bool) string {
	name := pad(record.Name, renderer.nameWidth())
	email := pad(record.Email, columnWidthEmail)
	department := pad(record.Department, columnWidthDepartment)
	designation := pad(record.Designation, columnWidthDesignation)
	status := pad(string(record.Status), columnWidthStatus)

	if selected {
		style := lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		return style.Render(" " + name + email + department + designation + status)
	}

	textStyle := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)
	statusStyle := lipgloss.NewStyle().Foreground(renderer.theme.StatusColor(record.Status))

	return " " + textStyle.Render(name) +
		faintStyle.Render(email) +
		textStyle.Render(department+designation) +
		statusStyle.Render(status)
}

// pad truncates or space-pads text to exactly width columns, leaving
// one trailing space as the column gap. Width is measured in terminal
// cells so wide runes count correctly.
func pad(text string, width int) string {
	content := width - 1
	if ansi.StringWidth(text) > content {
		text = ansi.Truncate(text, content-1, "…")
	}
	padding := width - ansi.StringWidth(text)
	if padding < 0 {
		padding = 0
	}
	return text + strings.Repeat(" ", padding)
}
