// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Drivers
//
// Both storage backends are classified here: Postgres errors by SQLSTATE
// ([pgconn.PgError]) and SQLite errors by extended result code
// ([sqlite3.ExtendedErrorCode]). Repositories never inspect driver errors
// themselves.
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ncruces/go-sqlite3"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Errors that already are an [apperr.AppError] pass through unchanged so that
// repositories can return them from inside a transaction closure.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	cause := fmt.Errorf("%s: %w", action, err)

	switch {
	case IsNoRows(err):
		return ErrNotFound

	case IsUniqueViolation(err):
		return apperr.Conflict("Resource already exists").WithCause(cause)

	case IsForeignKeyViolation(err):
		return apperr.Referential("Resource is referenced by other records").WithCause(cause)

	case IsCheckViolation(err):
		return apperr.ValidationError("Value rejected by a storage constraint").WithCause(cause)
	}

	return apperr.Internal(cause)
}

// IsNoRows reports whether err signals an empty single-row result.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a unique or primary key violation.
func IsUniqueViolation(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgerrcode.UniqueViolation
	}
	return errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) || errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY)
}

// IsForeignKeyViolation reports whether err is a foreign key violation,
// either a dangling reference on insert or a RESTRICT on delete.
func IsForeignKeyViolation(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgerrcode.ForeignKeyViolation || code == pgerrcode.RestrictViolation
	}
	return errors.Is(err, sqlite3.CONSTRAINT_FOREIGNKEY)
}

// IsCheckViolation reports whether err is a CHECK constraint failure.
func IsCheckViolation(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgerrcode.CheckViolation
	}
	return errors.Is(err, sqlite3.CONSTRAINT_CHECK)
}

// pgCode extracts the SQLSTATE from a Postgres error.
func pgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}
