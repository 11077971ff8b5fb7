// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/cli"
)

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "View and edit your own record",
		Description: `View and edit the signed-in employee's own record.

Name, email, and joining date are fixed at registration; the editable
fields are department, designation, address, and skillset.`,
		Subcommands: []*cli.Command{
			profileShowCommand(),
			profileUpdateCommand(),
			profilePhotoCommand(),
		},
	}
}

func profileShowCommand() *cli.Command {
	var jsonOutput bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show your profile",
		Usage:   "staffdeck profile show [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
			return flagSet
		},
		Run: func(args []string) error {
			env, err := newCommandEnv("profile/show")
			if err != nil {
				return err
			}
			record, err := env.client.Profile(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput {
				return cli.WriteJSON(record)
			}
			printRecord(record)
			return nil
		},
	}
}

func profileUpdateCommand() *cli.Command {
	var edits recordEdits
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "update",
		Summary: "Update your profile fields",
		Description: `Update one or more of your profile's editable fields. Fields not
named on the command line keep their current values.`,
		Usage: "staffdeck profile update [flags]",
		Examples: []cli.Example{
			{
				Description: "Change your own designation",
				Command:     "staffdeck profile update --designation 'Staff Engineer'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("update", pflag.ContinueOnError)
			edits.bindEditFlags(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			env, err := newCommandEnv("profile/update")
			if err != nil {
				return err
			}

			record, err := env.client.Profile(context.Background())
			if err != nil {
				return err
			}

			payload, edited, err := edits.apply(record, flagSet.Changed)
			if err != nil {
				return err
			}
			if !edited {
				return fmt.Errorf("nothing to update; pass at least one field flag")
			}

			updated, err := env.client.UpdateProfile(context.Background(), record.ID, payload)
			if err != nil {
				return err
			}
			printRecord(updated)
			return nil
		},
	}
}

func profilePhotoCommand() *cli.Command {
	return &cli.Command{
		Name:    "photo",
		Summary: "Upload a new profile photo",
		Usage:   "staffdeck profile photo <file>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument (the photo file)")
			}

			env, err := newCommandEnv("profile/photo")
			if err != nil {
				return err
			}

			record, err := env.client.Profile(context.Background())
			if err != nil {
				return err
			}

			photo, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening photo: %w", err)
			}
			defer photo.Close()

			if err := env.client.UpdatePhoto(context.Background(), record.ID, filepath.Base(args[0]), photo); err != nil {
				return err
			}
			fmt.Println("Photo updated.")
			return nil
		},
	}
}
