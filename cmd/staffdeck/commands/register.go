// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/cli"
	"github.com/staffdeck/staffdeck/lib/ems"
)

func registerCommand() *cli.Command {
	var request ems.RegisterRequest
	var password string
	var photoPath string

	return &cli.Command{
		Name:    "register",
		Summary: "Create a new employee account",
		Description: `Create an employee account on the backend.

Registration does not sign you in; run 'staffdeck login' afterwards.
If --password is omitted the password is prompted for so it stays out
of shell history.`,
		Usage: "staffdeck register --name NAME --email EMAIL [flags]",
		Examples: []cli.Example{
			{
				Description: "Register with a profile photo",
				Command:     "staffdeck register --name 'Priya Nair' --email priya@example.com --department Engineering --photo ./priya.jpg",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flagSet.StringVar(&request.Name, "name", "", "full name (required)")
			flagSet.StringVar(&request.Email, "email", "", "email address (required)")
			flagSet.StringVar(&password, "password", "", "password (prompted when omitted)")
			flagSet.StringVar(&request.Department, "department", "", "department")
			flagSet.StringVar(&request.Designation, "designation", "", "job title")
			flagSet.StringVar(&request.Address, "address", "", "postal address")
			flagSet.StringVar(&request.Skillset, "skillset", "", "comma-separated skills")
			flagSet.StringVar(&request.JoiningDate, "joining-date", "", "joining date (YYYY-MM-DD)")
			flagSet.StringVar(&photoPath, "photo", "", "path to a profile photo")
			return flagSet
		},
		Run: func(args []string) error {
			return runRegister(request, password, photoPath)
		},
	}
}

func runRegister(request ems.RegisterRequest, password, photoPath string) error {
	if request.Name == "" || request.Email == "" {
		return fmt.Errorf("--name and --email are required")
	}

	if password == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--password is required when stdin is not a terminal")
		}
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}
	request.Password = password

	if photoPath != "" {
		photo, err := os.ReadFile(photoPath)
		if err != nil {
			return fmt.Errorf("reading photo: %w", err)
		}
		request.Photo = photo
		request.PhotoFilename = filepath.Base(photoPath)
	}

	env, err := newCommandEnv("register")
	if err != nil {
		return err
	}

	if err := env.client.Register(context.Background(), request); err != nil {
		var apiErr *ems.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("registration failed: %s", apiErr.Message)
		}
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Registered %s. Run 'staffdeck login %s' to sign in.\n", request.Name, request.Email)
	return nil
}
