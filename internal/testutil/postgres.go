// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package testutil

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/database"
	"github.com/taibuivan/locallibrary/internal/platform/storage"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

// NewPostgresDB migrates a fresh schema on the server at DATABASE_URL and
// returns a pool bound to it through search_path. The schema is dropped when
// the test ends. The test is skipped when DATABASE_URL is unset.
func NewPostgresDB(t testing.TB) *database.DB {
	t.Helper()

	base := os.Getenv("DATABASE_URL")
	if base == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()

	admin, err := pgx.Connect(ctx, base)
	require.NoError(t, err)
	t.Cleanup(func() { _ = admin.Close(ctx) })

	name := "catalog_test_" + strings.ReplaceAll(uuid.New(), "-", "")
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+name)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = admin.Exec(ctx, "DROP SCHEMA "+name+" CASCADE") })

	dsn, err := withSearchPath(base, name)
	require.NoError(t, err)

	cfg := &config.Config{DBDriver: config.DriverPostgres, DatabaseURL: dsn}
	store, err := storage.Open(ctx, cfg, true, DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(store.Close)

	return store.DB
}

// withSearchPath pins every connection opened from dsn to schema.
func withSearchPath(dsn, schema string) (string, error) {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set("search_path", schema)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// Backend opens a fresh, empty catalog database.
type Backend struct {
	Name string
	Open func(t testing.TB) *database.DB
}

// Backends lists every store the catalog runs on. The postgres entry skips
// its subtest when DATABASE_URL is unset.
func Backends() []Backend {
	return []Backend{
		{Name: "sqlite", Open: NewTestDB},
		{Name: "postgres", Open: NewPostgresDB},
	}
}
