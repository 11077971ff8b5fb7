// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/staffdeck/staffdeck/lib/ems"
)

// Theme defines the color palette for the dashboard. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Employee status colors.
	StatusActive   lipgloss.Color
	StatusInactive lipgloss.Color

	// UI chrome.
	TitleForeground  lipgloss.Color
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar notices.
	NoticeText lipgloss.Color
	ErrorText  lipgloss.Color

	// Form fields.
	FieldLabel        lipgloss.Color
	FieldFocusedLabel lipgloss.Color
}

// StatusColor returns the color for an employee status. Unknown
// values render faint.
func (theme Theme) StatusColor(status ems.Status) lipgloss.Color {
	switch status {
	case ems.StatusActive:
		return theme.StatusActive
	case ems.StatusInactive:
		return theme.StatusInactive
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusActive:   lipgloss.Color("114"), // green
	StatusInactive: lipgloss.Color("245"), // gray

	TitleForeground:  lipgloss.Color("81"), // cyan
	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	NoticeText: lipgloss.Color("114"), // green
	ErrorText:  lipgloss.Color("196"), // red

	FieldLabel:        lipgloss.Color("245"),
	FieldFocusedLabel: lipgloss.Color("81"),
}
