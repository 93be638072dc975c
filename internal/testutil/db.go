// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package testutil provides test utilities for database setup.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/database"
	"github.com/taibuivan/locallibrary/internal/platform/sqlite"
)

// NewTestDB opens a fresh SQLite catalog in the test's temp directory with
// the full schema applied. The database is closed when the test ends.
func NewTestDB(t testing.TB) *database.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"), DiscardLogger())
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
