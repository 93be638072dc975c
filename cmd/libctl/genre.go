// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/locallibrary/internal/app"
)

var genreCmd = &cobra.Command{
	Use:   "genre",
	Short: "Manage genres",
}

var genreAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a genre (names are unique ignoring case)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(services *app.Services) error {
			created, err := services.Genres.CreateGenre(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		})
	},
}

var genreListCmd = &cobra.Command{
	Use:   "list",
	Short: "List genres by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withServices(cmd.Context(), func(services *app.Services) error {
			genres, err := services.Genres.ListGenres(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, genres)
		})
	},
}

func init() {
	genreCmd.AddCommand(genreAddCmd, genreListCmd)
}
