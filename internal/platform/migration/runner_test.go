// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/migration"
	"github.com/taibuivan/locallibrary/migrations"
)

/*
TestConvertToPgx5DSN verifies scheme rewriting for golang-migrate.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres_scheme", "postgres://lib:pw@db:5432/catalog", "pgx5://lib:pw@db:5432/catalog"},
		{"postgresql_scheme", "postgresql://db/catalog?sslmode=disable", "pgx5://db/catalog?sslmode=disable"},
		{"already_pgx5", "pgx5://db/catalog", "pgx5://db/catalog"},
		{"keyword_dsn", "host=db dbname=catalog", "host=db dbname=catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ConvertToPgx5DSN(tt.dsn))
		})
	}
}

/*
TestEmbeddedMigrations checks that every up migration has a matching down file.
*/
func TestEmbeddedMigrations(t *testing.T) {
	ups, err := fs.Glob(migrations.Postgres, migrations.PostgresDir+"/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := fs.Stat(migrations.Postgres, down)
		assert.NoError(t, err, "missing down migration for %s", up)
	}

	assert.Contains(t, migrations.SQLiteSchema, "catalog_genre_name_key")
}
