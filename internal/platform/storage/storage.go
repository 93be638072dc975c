// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage opens the catalog store selected by DB_DRIVER.

Backends:

  - postgres: tuned pgxpool, exposed through database/sql, migrated with
    golang-migrate before the handle is returned.
  - sqlite: single file opened by the embedded driver with the schema applied.

Both return the same [*database.DB], so repositories never branch on the driver.
*/
package storage

import (
	stdctx "context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/database"
	"github.com/taibuivan/locallibrary/internal/platform/migration"
	pgstore "github.com/taibuivan/locallibrary/internal/platform/postgres"
	"github.com/taibuivan/locallibrary/internal/platform/sqlite"
)

// Store is an open catalog handle and its released resources.
type Store struct {
	DB *database.DB

	// Ping checks the backing store for readiness probes.
	Ping func(context stdctx.Context) error

	close func()
}

// Close releases the handle and any pool behind it.
func (store *Store) Close() {
	if store.close != nil {
		store.close()
	}
}

// Open connects to the configured backend. With migrate set, pending
// Postgres migrations are applied first.
func Open(context stdctx.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return openPostgres(context, cfg, migrate, logger)
	case config.DriverSQLite:
		return openSQLite(context, cfg, logger)
	}
	return nil, fmt.Errorf("storage: unsupported driver %q", cfg.DBDriver)
}

func openPostgres(context stdctx.Context, cfg *config.Config, migrate bool, logger *slog.Logger) (*Store, error) {
	if migrate {
		if err := migration.RunUp(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
	}

	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	db := pgstore.Open(pool)
	return &Store{
		DB: db,
		Ping: func(context stdctx.Context) error {
			return pgstore.Ping(context, pool)
		},
		close: func() {
			logger.Info("closing postgres pool")
			_ = db.Close()
			pool.Close()
		},
	}, nil
}

func openSQLite(context stdctx.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	db, err := sqlite.Open(context, cfg.SQLitePath, logger)
	if err != nil {
		return nil, err
	}

	return &Store{
		DB: db,
		Ping: func(context stdctx.Context) error {
			return sqlite.Ping(context, db.DB.DB)
		},
		close: func() {
			logger.Info("closing sqlite database", slog.String("path", cfg.SQLitePath))
			_ = db.Close()
		},
	}, nil
}
