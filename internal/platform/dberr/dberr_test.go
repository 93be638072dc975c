// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/testutil"
)

/*
TestWrap_Postgres maps SQLSTATE codes to application error codes.
*/
func TestWrap_Postgres(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     string
	}{
		{pgerrcode.UniqueViolation, apperr.CodeConflict},
		{pgerrcode.ForeignKeyViolation, apperr.CodeReferential},
		{pgerrcode.RestrictViolation, apperr.CodeReferential},
		{pgerrcode.CheckViolation, apperr.CodeValidation},
		{pgerrcode.SerializationFailure, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.sqlstate, func(t *testing.T) {
			err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tt.sqlstate})
			wrapped := dberr.Wrap(err, "test_action")
			assert.True(t, apperr.HasCode(wrapped, tt.want), wrapped)
		})
	}
}

/*
TestWrap_PassThrough keeps AppErrors and nil as they are.
*/
func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	original := apperr.NotFound("Book")
	assert.Same(t, original, dberr.Wrap(original, "get_book"))

	assert.True(t, apperr.HasCode(dberr.Wrap(sql.ErrNoRows, "get"), apperr.CodeNotFound))
	assert.True(t, apperr.HasCode(dberr.Wrap(errors.New("boom"), "x"), apperr.CodeInternal))
}

/*
TestWrap_SQLite classifies real constraint failures from the embedded backend.
*/
func TestWrap_SQLite(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO catalog_genre (name, name_key) VALUES ('Fantasy', 'fantasy')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO catalog_genre (name, name_key) VALUES ('FANTASY', 'fantasy')`)
	require.Error(t, err)
	assert.True(t, dberr.IsUniqueViolation(err))

	_, err = db.ExecContext(ctx, `INSERT INTO catalog_book (title, author_id, isbn) VALUES ('Orphan', 42, '9780000000001')`)
	require.Error(t, err)
	assert.True(t, dberr.IsForeignKeyViolation(err))

	_, err = db.ExecContext(ctx, `INSERT INTO catalog_book (title, isbn) VALUES ('Short', '123')`)
	require.Error(t, err)
	assert.True(t, dberr.IsCheckViolation(err))
	assert.True(t, apperr.HasCode(dberr.Wrap(err, "insert_book"), apperr.CodeValidation))
}
