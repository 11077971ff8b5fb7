// Copyright 2026 The Staffdeck Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/staffdeck/staffdeck/cmd/staffdeck/cli"
	"github.com/staffdeck/staffdeck/lib/config"
	"github.com/staffdeck/staffdeck/lib/ems"
)

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:    "admin",
		Summary: "Manage employee records",
		Description: `Administrator operations on employee records. All subcommands
require an admin session.`,
		Subcommands: []*cli.Command{
			adminListCommand(),
			adminShowCommand(),
			adminUpdateCommand(),
			adminEnableCommand(),
			adminDisableCommand(),
			adminDeleteCommand(),
		},
	}
}

func adminListCommand() *cli.Command {
	var page int
	var pageSize int
	var filters ems.ListFilters
	var status string
	var jsonOutput bool
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "list",
		Summary: "List employees",
		Description: `List employees one page at a time, with the same search, status
filter, and sort options the dashboard offers.`,
		Usage: "staffdeck admin list [flags]",
		Examples: []cli.Example{
			{
				Description: "Second page of inactive employees",
				Command:     "staffdeck admin list --status inactive --page 2",
			},
			{
				Description: "Search by name, sorted descending, as JSON",
				Command:     "staffdeck admin list --search priya --sort-by name --sort-order desc --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.IntVar(&page, "page", 1, "page number (1-based)")
			flagSet.IntVar(&pageSize, "page-size", 0, "page size (defaults to the configured size)")
			flagSet.StringVar(&filters.Search, "search", "", "match against name and email")
			flagSet.StringVar(&status, "status", "", "filter by status (active or inactive)")
			flagSet.StringVar(&filters.SortBy, "sort-by", "", "sort field (e.g. name)")
			flagSet.StringVar(&filters.SortOrder, "sort-order", "", "sort direction (asc or desc)")
			flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON instead of a table")
			return flagSet
		},
		Run: func(args []string) error {
			env, err := newCommandEnv("admin/list")
			if err != nil {
				return err
			}

			if flagSet.Changed("status") {
				parsed, err := ems.ParseStatus(status)
				if err != nil {
					return err
				}
				filters.Status = string(parsed)
			}
			if pageSize == 0 {
				pageSize = env.cfg.Admin.PageSize
			}
			if page < 1 || pageSize < 1 {
				return fmt.Errorf("--page and --page-size must be at least 1")
			}

			result, err := env.client.ListEmployees(context.Background(), page, pageSize, filters)
			if err != nil {
				return err
			}

			if jsonOutput {
				return cli.WriteJSON(result)
			}

			writer := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tEMAIL\tDEPARTMENT\tDESIGNATION\tSTATUS")
			for _, record := range result.Items {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
					record.ID, record.Name, record.Email,
					record.Department, record.Designation, record.Status)
			}
			writer.Flush()

			totalPages := (result.TotalCount + pageSize - 1) / pageSize
			if totalPages < 1 {
				totalPages = 1
			}
			fmt.Printf("\npage %d of %d (%d employees)\n", result.PageNumber, totalPages, result.TotalCount)
			return nil
		},
	}
}

func adminShowCommand() *cli.Command {
	var jsonOutput bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show one employee record",
		Usage:   "staffdeck admin show <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument (the employee id)")
			}
			env, err := newCommandEnv("admin/show")
			if err != nil {
				return err
			}
			record, err := env.client.FindEmployee(context.Background(), args[0])
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

func adminUpdateCommand() *cli.Command {
	var edits recordEdits
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "update",
		Summary: "Update an employee's fields",
		Description: `Update one or more fields of an employee record. The record is
fetched first and unnamed fields keep their current values.`,
		Usage: "staffdeck admin update <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Move an employee to a new department",
				Command:     "staffdeck admin update 42 --department Platform",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("update", pflag.ContinueOnError)
			edits.bindEditFlags(flagSet)
			flagSet.StringVar(&edits.status, "status", "", "new status (active or inactive)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one argument (the employee id)")
			}

			env, err := newCommandEnv("admin/update")
			if err != nil {
				return err
			}

			record, err := env.client.FindEmployee(context.Background(), args[0])
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

			updated, err := env.client.UpdateEmployee(context.Background(), record.ID, payload)
			if err != nil {
				return err
			}
			printRecord(updated)
			return nil
		},
	}
}

func adminEnableCommand() *cli.Command {
	return &cli.Command{
		Name:    "enable",
		Summary: "Set an employee's status to Active",
		Usage:   "staffdeck admin enable <id>",
		Run: func(args []string) error {
			return runSetStatus("admin/enable", args, ems.StatusActive)
		},
	}
}

func adminDisableCommand() *cli.Command {
	return &cli.Command{
		Name:    "disable",
		Summary: "Set an employee's status to Inactive",
		Usage:   "staffdeck admin disable <id>",
		Run: func(args []string) error {
			return runSetStatus("admin/disable", args, ems.StatusInactive)
		},
	}
}

func runSetStatus(commandName string, args []string, status ems.Status) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one argument (the employee id)")
	}

	env, err := newCommandEnv(commandName)
	if err != nil {
		return err
	}

	record, err := env.client.FindEmployee(context.Background(), args[0])
	if err != nil {
		return err
	}
	if record.Status == status {
		fmt.Printf("%s is already %s.\n", record.Name, status)
		return nil
	}

	payload, err := setStatusPayload(record, status)
	if err != nil {
		return err
	}
	if _, err := env.client.UpdateEmployee(context.Background(), record.ID, payload); err != nil {
		return err
	}
	fmt.Printf("%s is now %s.\n", record.Name, status)
	return nil
}

func adminDeleteCommand() *cli.Command {
	var hard bool
	var yes bool

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete (or deactivate) an employee",
		Description: `Remove an employee record. What "remove" means follows the
admin.delete_action configuration: "delete" removes the record
permanently, "deactivate" flips it to Inactive instead. Pass --hard to
delete permanently regardless of configuration.`,
		Usage: "staffdeck admin delete <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			flagSet.BoolVar(&hard, "hard", false, "delete permanently even when configured to deactivate")
			flagSet.BoolVar(&yes, "yes", false, "skip the confirmation prompt")
			return flagSet
		},
		Run: func(args []string) error {
			return runAdminDelete(args, hard, yes)
		},
	}
}

func runAdminDelete(args []string, hard, yes bool) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one argument (the employee id)")
	}

	env, err := newCommandEnv("admin/delete")
	if err != nil {
		return err
	}

	record, err := env.client.FindEmployee(context.Background(), args[0])
	if err != nil {
		return err
	}

	deactivate := env.cfg.Admin.DeleteAction == config.DeleteActionDeactivate && !hard
	action := "Delete"
	if deactivate {
		action = "Deactivate"
	}

	if !yes {
		fmt.Printf("%s %s (%s)? [y/N] ", action, record.Name, record.Email)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if deactivate {
		payload, err := setStatusPayload(record, ems.StatusInactive)
		if err != nil {
			return err
		}
		if _, err := env.client.UpdateEmployee(context.Background(), record.ID, payload); err != nil {
			return err
		}
		fmt.Printf("Deactivated %s.\n", record.Name)
		return nil
	}

	if err := env.client.DeleteEmployee(context.Background(), record.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s.\n", record.Name)
	return nil
}
