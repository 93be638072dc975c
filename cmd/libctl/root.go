// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/taibuivan/locallibrary/internal/app"
	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	driverFlag     string
	sqlitePathFlag string
	verboseFlag    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "libctl",
	Short:             "Administer the locallibrary catalog",
	Long:              `libctl manages catalog data directly against the configured store: schema migrations, dashboard counts, genres and copy status.`,
	Version:           constants.AppVersion,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "",
		"catalog store: postgres or sqlite (default: DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&sqlitePathFlag, "sqlite-path", "",
		"SQLite database file (default: SQLITE_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"log store events to stderr")

	rootCmd.AddCommand(migrateCmd, statsCmd, genreCmd, instanceCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if verboseFlag {
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName+"-cli"))

	overrides := make(map[string]string)
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			overrides[key] = value
		}
	}
	if driverFlag != "" {
		overrides["DB_DRIVER"] = driverFlag
	}
	if sqlitePathFlag != "" {
		overrides["SQLITE_PATH"] = sqlitePathFlag
	}

	loaded, err := config.LoadFrom(overrides)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// withServices opens the store, runs fn and closes the store again.
func withServices(ctx context.Context, fn func(services *app.Services) error) error {
	store, err := storage.Open(ctx, cfg, false, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(app.NewServices(store.DB, instance.NoopFeed{}, logger))
}

// printJSON writes value as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, value interface{}) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return err
}
