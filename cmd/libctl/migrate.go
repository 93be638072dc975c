// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/migration"
	"github.com/taibuivan/locallibrary/internal/platform/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long:  `Applies the embedded Postgres migrations, or creates the SQLite schema when the sqlite driver is selected.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := storage.Open(cmd.Context(), cfg, true, logger)
		if err != nil {
			return err
		}
		store.Close()

		if cfg.DBDriver != config.DriverPostgres {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sqlite schema ready at %s\n", cfg.SQLitePath)
			return err
		}

		version, dirty, err := migration.Version(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "postgres schema at version %d (dirty=%t)\n", version, dirty)
		return err
	},
}
