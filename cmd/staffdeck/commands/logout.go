// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/cli"
	"github.com/staffdeck/staffdeck/lib/session"
)

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Discard the saved session",
		Description: `Remove the locally saved session.

The bearer token is simply deleted; nothing is sent to the backend.`,
		Usage: "staffdeck logout",
		Run:   runLogout,
	}
}

func runLogout(args []string) error {
	env, err := newCommandEnv("logout")
	if err != nil {
		return err
	}

	if _, err := env.store.Load(); errors.Is(err, session.ErrAbsent) {
		fmt.Println("Not signed in.")
		return nil
	}

	if err := env.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}
