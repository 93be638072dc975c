// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/locallibrary/internal/app"
	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/pkg/date"
)

var dueBackFlag string

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Inspect and update book copies",
}

var instanceStatusCmd = &cobra.Command{
	Use:   "status <instance-id> <maintenance|on_loan|available|reserved>",
	Short: "Set the status of a copy",
	Long:  `Sets the status of a copy. on_loan requires --due; available and maintenance clear the due date.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dueBack *date.Date
		if dueBackFlag != "" {
			parsed, err := date.Parse(dueBackFlag)
			if err != nil {
				return err
			}
			dueBack = &parsed
		}

		return withServices(cmd.Context(), func(services *app.Services) error {
			updated, err := services.Instances.SetStatus(cmd.Context(), args[0], instance.Status(args[1]), dueBack)
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		})
	},
}

var instanceOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List copies on loan past their due date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withServices(cmd.Context(), func(services *app.Services) error {
			overdue, err := services.Instances.ListOverdue(cmd.Context(), date.Today())
			if err != nil {
				return err
			}
			return printJSON(cmd, overdue)
		})
	},
}

func init() {
	instanceStatusCmd.Flags().StringVar(&dueBackFlag, "due", "", "due date, YYYY-MM-DD")
	instanceCmd.AddCommand(instanceStatusCmd, instanceOverdueCmd)
}
