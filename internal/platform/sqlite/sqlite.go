// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded single-file catalog backend.
//
// # Architecture
//
// The driver is ncruces/go-sqlite3 (SQLite compiled to wasm, no cgo). Foreign
// keys are enabled on every connection through the DSN and the schema from
// [migrations.SQLiteSchema] is applied on open.
//
// # Concurrency
//
// The pool is capped at one connection. Writers are serialised by SQLite
// anyway, and a single connection keeps every statement of a transaction on
// the connection that holds the write lock.
package sqlite

import (
	stdctx "context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite3" database/sql driver.
	_ "github.com/ncruces/go-sqlite3/driver"
	// Embeds the SQLite wasm build.
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/taibuivan/locallibrary/internal/platform/database"
	"github.com/taibuivan/locallibrary/migrations"
)

const (
	driverName = "sqlite3"
	// busyTimeout is how long a statement waits on a locked database.
	busyTimeout = 5 * time.Second
	pingTimeout = 2 * time.Second
)

// DSN builds the connection string for the database file at path.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		filepath.ToSlash(path), busyTimeout.Milliseconds())
}

// Open creates (if needed) and opens the database file at path, applies the
// catalog schema and returns a [database.DB] using the sqlite3 dialect.
func Open(context stdctx.Context, path string, logger *slog.Logger) (*database.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: create directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open(driverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	if err := Ping(context, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := conn.ExecContext(context, migrations.SQLiteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	logger.Info("sqlite database opened", slog.String("path", path))

	return database.New(conn, driverName, database.DialectSQLite), nil
}

// Ping verifies that the database file is reachable.
func Ping(context stdctx.Context, conn *sql.DB) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}
