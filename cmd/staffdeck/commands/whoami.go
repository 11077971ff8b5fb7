// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/cli"
	"github.com/staffdeck/staffdeck/lib/ems"
	"github.com/staffdeck/staffdeck/lib/session"
)

func whoamiCommand() *cli.Command {
	var jsonOutput bool

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the current session",
		Description: `Show who is signed in, their role, and when the session token
expires. Exits 1 when no session is saved, so scripts can use it as a
signed-in check.`,
		Usage: "staffdeck whoami [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
			return flagSet
		},
		Run: func(args []string) error {
			return runWhoami(jsonOutput)
		},
	}
}

func runWhoami(jsonOutput bool) error {
	env, err := newCommandEnv("whoami")
	if err != nil {
		return err
	}

	sess, err := env.store.Load()
	if errors.Is(err, session.ErrAbsent) {
		fmt.Println("Not signed in.")
		return &cli.ExitError{Code: 1}
	}
	if err != nil {
		return err
	}

	// The expiry is informational; opaque (non-JWT) tokens just don't
	// show one.
	var expiresAt time.Time
	if claims, err := ems.DecodeTokenClaims(sess.Token); err == nil {
		expiresAt = claims.ExpiresAt
	}

	if jsonOutput {
		output := struct {
			UserID    string `json:"user_id"`
			Name      string `json:"name"`
			Role      string `json:"role"`
			ExpiresAt string `json:"expires_at,omitempty"`
		}{
			UserID: sess.UserID,
			Name:   sess.Name,
			Role:   string(sess.Role),
		}
		if !expiresAt.IsZero() {
			output.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
		}
		return cli.WriteJSON(output)
	}

	fmt.Printf("%s (%s)\n", sess.Name, sess.Role)
	fmt.Printf("  user id: %s\n", sess.UserID)
	switch {
	case expiresAt.IsZero():
		// Nothing to say about expiry.
	case time.Now().After(expiresAt):
		fmt.Printf("  session: expired %s\n", expiresAt.Local().Format(time.RFC1123))
	default:
		fmt.Printf("  session: expires %s\n", expiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
