// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package database is the storage-neutral handle shared by every catalog repository.

It pairs a [sqlx.DB] with the goqu dialect of the engine behind it, so that a
single repository implementation renders `$1` placeholders on Postgres and `?`
on SQLite.

Responsibilities:

  - Builders: From/Insert/Update/Delete return prepared goqu datasets.
  - Execution: Get, Select, Exec and Count run a dataset on a DB or a Tx.
  - Transactions: WithTx wraps a closure in BEGIN/COMMIT with a tracing span.

Repositories receive a [*DB] through their constructor and never see the
underlying driver.
*/
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	// Registers the goqu dialects used below.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

// # Dialects

// Dialect names the SQL engine behind a [DB]. The values double as goqu
// dialect names.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

const tracerName = "github.com/taibuivan/locallibrary/internal/platform/database"

// Querier is satisfied by both [*sqlx.DB] and [*sqlx.Tx].
type Querier interface {
	sqlx.ExtContext
}

// Builder is any goqu dataset that can render itself to SQL.
type Builder interface {
	ToSQL() (string, []interface{}, error)
}

// # Handle

// DB is a dialect-aware database handle.
type DB struct {
	*sqlx.DB
	dialect Dialect
	goqu    goqu.DialectWrapper
	tracer  trace.Tracer
}

// New wraps an open [sql.DB]. driverName is the database/sql driver name
// ("pgx" or "sqlite3") used by sqlx for bind-var rebinding.
func New(db *sql.DB, driverName string, dialect Dialect) *DB {
	return &DB{
		DB:      sqlx.NewDb(db, driverName),
		dialect: dialect,
		goqu:    goqu.Dialect(string(dialect)),
		tracer:  otel.Tracer(tracerName),
	}
}

// Dialect returns the SQL engine behind the handle.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is available.
// SQLite serialises writers at the database level instead.
func (db *DB) SupportsRowLocks() bool {
	return db.dialect == DialectPostgres
}

// # Builders

// From starts a prepared SELECT.
func (db *DB) From(table ...interface{}) *goqu.SelectDataset {
	return db.goqu.From(table...).Prepared(true)
}

// Insert starts a prepared INSERT.
func (db *DB) Insert(table interface{}) *goqu.InsertDataset {
	return db.goqu.Insert(table).Prepared(true)
}

// Update starts a prepared UPDATE.
func (db *DB) Update(table interface{}) *goqu.UpdateDataset {
	return db.goqu.Update(table).Prepared(true)
}

// Delete starts a prepared DELETE.
func (db *DB) Delete(table interface{}) *goqu.DeleteDataset {
	return db.goqu.Delete(table).Prepared(true)
}

// Contains builds a substring predicate on column without LIKE, so that `%`
// and `_` in the needle match literally.
func (db *DB) Contains(column, needle string, caseInsensitive bool) exp.Expression {
	var haystack, value interface{} = goqu.C(column), goqu.V(needle)
	if caseInsensitive {
		haystack = goqu.Func("LOWER", haystack)
		value = goqu.Func("LOWER", value)
	}

	position := "STRPOS"
	if db.dialect == DialectSQLite {
		position = "INSTR"
	}

	return goqu.Func(position, haystack, value).Gt(0)
}

// # Execution

// Get runs a single-row query into dest.
func Get(context context.Context, querier Querier, dest interface{}, builder Builder) error {
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("database: build query: %w", err)
	}
	return sqlx.GetContext(context, querier, dest, query, args...)
}

// Select runs a multi-row query into the slice pointed to by dest.
func Select(context context.Context, querier Querier, dest interface{}, builder Builder) error {
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("database: build query: %w", err)
	}
	return sqlx.SelectContext(context, querier, dest, query, args...)
}

// Exec runs a statement that returns no rows.
func Exec(context context.Context, querier Querier, builder Builder) (sql.Result, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("database: build statement: %w", err)
	}
	return querier.ExecContext(context, query, args...)
}

// ExecAffected runs a statement and returns the number of affected rows.
func ExecAffected(context context.Context, querier Querier, builder Builder) (int64, error) {
	result, err := Exec(context, querier, builder)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Count replaces the projection of query with COUNT(*) and returns the result.
func Count(context context.Context, querier Querier, query *goqu.SelectDataset) (int, error) {
	var total int64
	if err := Get(context, querier, &total, query.Select(goqu.COUNT(goqu.Star()))); err != nil {
		return 0, err
	}
	return int(total), nil
}

// Exists reports whether query matches at least one row.
func Exists(context context.Context, querier Querier, query *goqu.SelectDataset) (bool, error) {
	total, err := Count(context, querier, query.Limit(1))
	return total > 0, err
}

// InsertID runs an INSERT and returns the generated integer key of column id.
//
// Postgres returns the key through RETURNING; the goqu sqlite3 dialect has no
// RETURNING support, so the driver's last insert id is used instead.
func (db *DB) InsertID(context context.Context, querier Querier, insert *goqu.InsertDataset) (int64, error) {
	if db.dialect == DialectPostgres {
		query, args, err := insert.Returning(goqu.C("id")).ToSQL()
		if err != nil {
			return 0, fmt.Errorf("database: build insert: %w", err)
		}
		var id int64
		if err := querier.QueryRowxContext(context, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := Exec(context, querier, insert)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// # Transactions

// WithTx runs fn inside a transaction named for tracing. The transaction is
// committed when fn returns nil and rolled back otherwise. The error of fn is
// returned as is.
func (db *DB) WithTx(context context.Context, name string, fn func(tx *sqlx.Tx) error) error {
	context, span := db.tracer.Start(context, "db.tx."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", string(db.dialect))),
	)
	defer span.End()

	transaction, err := db.BeginTxx(context, nil)
	if err != nil {
		span.SetStatus(codes.Error, "begin failed")
		return fmt.Errorf("database: begin %s: %w", name, err)
	}
	defer func() { _ = transaction.Rollback() }()

	if err := fn(transaction); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" rolled back")
		return err
	}

	if err := transaction.Commit(); err != nil {
		span.SetStatus(codes.Error, "commit failed")
		return fmt.Errorf("database: commit %s: %w", name, err)
	}

	return nil
}

// # Helpers

// Nullable converts an optional value to a query argument, nil for SQL NULL.
func Nullable[T any](value *T) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
