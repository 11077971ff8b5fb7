// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete staffdeck CLI command tree.
// Each command file contributes one top-level command; commands.go
// assembles the tree and owns the shared client/session wiring.
package commands

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/cli"
	"github.com/staffdeck/staffdeck/lib/config"
	"github.com/staffdeck/staffdeck/lib/ems"
	"github.com/staffdeck/staffdeck/lib/session"
	"github.com/staffdeck/staffdeck/lib/version"
)

// Root builds and returns the complete staffdeck CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "staffdeck",
		Description: `Staffdeck: employee management from the terminal.

Sign in once, then browse, edit, and manage employee records either
interactively (staffdeck dashboard) or with scriptable subcommands.`,
		Subcommands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			registerCommand(),
			profileCommand(),
			adminCommand(),
			dashboardCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("staffdeck %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Sign in (saves the session locally)",
				Command:     "staffdeck login ada@example.com",
			},
			{
				Description: "Open the interactive dashboard",
				Command:     "staffdeck dashboard",
			},
			{
				Description: "List employees matching a search, as JSON",
				Command:     "staffdeck admin list --search priya --json",
			},
			{
				Description: "Show your own profile",
				Command:     "staffdeck profile show",
			},
		},
	}
}

// commandEnv bundles the pieces every backend-facing command needs:
// the loaded configuration, the session store, and the API client.
type commandEnv struct {
	cfg    *config.Config
	store  *session.Store
	client *ems.Client
}

// newCommandEnv loads configuration and constructs the session store
// and API client. commandName tags the logger so every request line
// says which subcommand issued it.
func newCommandEnv(commandName string) (*commandEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	sessionPath := cfg.Session.File
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	store := session.NewStore(sessionPath)

	client, err := ems.New(ems.ClientConfig{
		BaseURL:    cfg.Backend.BaseURL,
		Store:      store,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout()},
		Logger:     cli.NewCommandLogger().With("command", commandName),
		OnAuthExpired: func() {
			fmt.Fprintln(os.Stderr, "session expired; run 'staffdeck login' to sign in again")
		},
	})
	if err != nil {
		return nil, err
	}

	return &commandEnv{cfg: cfg, store: store, client: client}, nil
}

// requireSession loads the current session, translating an absent one
// into a friendly error instead of the raw sentinel.
func (env *commandEnv) requireSession() (*session.Session, error) {
	sess, err := env.store.Load()
	if err != nil {
		if errors.Is(err, session.ErrAbsent) {
			return nil, fmt.Errorf("not signed in; run 'staffdeck login' first")
		}
		return nil, err
	}
	return sess, nil
}
