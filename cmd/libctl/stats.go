// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/locallibrary/internal/app"
)

var titleFilterFlag string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withServices(cmd.Context(), func(services *app.Services) error {
			summary, err := services.Stats.Summary(cmd.Context(), titleFilterFlag)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		})
	},
}

func init() {
	statsCmd.Flags().StringVar(&titleFilterFlag, "title", "",
		"count titles containing this text (default: road)")
}
