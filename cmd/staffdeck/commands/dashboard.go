// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/cli"
	"github.com/staffdeck/staffdeck/lib/dashui"
)

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Summary: "Open the interactive dashboard",
		Description: `Open the full-screen interactive dashboard.

Without a saved session this starts at the login screen. Admins land
on the employee listing; employees land on their own profile. Key
bindings are shown along the bottom of each screen.`,
		Usage: "staffdeck dashboard",
		Run:   runDashboard,
	}
}

func runDashboard(args []string) error {
	env, err := newCommandEnv("dashboard")
	if err != nil {
		return err
	}

	model, err := dashui.NewModel(dashui.Options{
		Client:       env.client,
		Store:        env.store,
		PageSize:     env.cfg.Admin.PageSize,
		DeleteAction: env.cfg.Admin.DeleteAction,
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
