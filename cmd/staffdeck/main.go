// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like whoami) return an
		// ExitError with the desired exit code. Don't print a redundant
		// "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args, err := extractConfigFlag(os.Args[1:])
	if err != nil {
		return err
	}
	return commands.Root().Execute(args)
}

// extractConfigFlag strips the global --config flag before command
// dispatch, promoting it to the STAFFDECK_CONFIG environment variable
// that configuration loading reads. Every subcommand sees the same
// config this way without carrying its own flag.
func extractConfigFlag(args []string) ([]string, error) {
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--config requires a path")
			}
			os.Setenv("STAFFDECK_CONFIG", args[i+1])
			i++
		case strings.HasPrefix(args[i], "--config="):
			os.Setenv("STAFFDECK_CONFIG", strings.TrimPrefix(args[i], "--config="))
		default:
			remaining = append(remaining, args[i])
		}
	}
	return remaining, nil
}
