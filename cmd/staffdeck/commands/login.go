// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/cli"
	"github.com/staffdeck/staffdeck/lib/ems"
	"github.com/staffdeck/staffdeck/lib/session"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:    "login",
		Summary: "Sign in and save a session",
		Description: `Authenticate against the backend and persist the session locally.

The email may be given as an argument; the password is prompted for
(never taken from the command line, so it stays out of shell history).
When stdin is not a terminal both values are read from stdin, one per
line, so the command can be scripted.`,
		Usage: "staffdeck login [email]",
		Examples: []cli.Example{
			{
				Description: "Sign in interactively",
				Command:     "staffdeck login ada@example.com",
			},
		},
		Run: runLogin,
	}
}

func runLogin(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one argument (the email), got %d", len(args))
	}

	env, err := newCommandEnv("login")
	if err != nil {
		return err
	}

	email := ""
	if len(args) == 1 {
		email = args[0]
	}

	email, password, err := readCredentials(email)
	if err != nil {
		return err
	}

	response, err := env.client.Login(context.Background(), email, password)
	if err != nil {
		var apiErr *ems.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("login failed: %s", apiErr.Message)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	role, err := session.ParseRole(response.Role)
	if err != nil {
		return fmt.Errorf("backend returned an unusable session: %w", err)
	}

	if err := env.store.Establish(session.Session{
		Token:  response.Token,
		UserID: response.UserID,
		Name:   response.Name,
		Role:   role,
	}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("Signed in as %s (%s).\n", response.Name, role)
	return nil
}

// readCredentials fills in whichever of email and password were not
// already supplied. Password echo is disabled on terminals.
func readCredentials(email string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	if email == "" {
		if interactive {
			fmt.Fprint(os.Stderr, "Email: ")
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", fmt.Errorf("email is required")
	}

	var password string
	if interactive {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}

	return email, password, nil
}
