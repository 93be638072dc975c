// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations embeds the catalog schema for both storage backends.
//
// Postgres is versioned through golang-migrate (postgres/NNNNNN_name.up.sql);
// SQLite is a single idempotent script applied on open.
package migrations

import "embed"

// Postgres holds the versioned migrations under the "postgres" directory.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// PostgresDir is the directory inside [Postgres] holding the migrations.
const PostgresDir = "postgres"

// SQLiteSchema creates every table and index if absent.
//
//go:embed sqlite/schema.sql
var SQLiteSchema string
