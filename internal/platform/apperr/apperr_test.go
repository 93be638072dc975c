// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

/*
TestConstructors checks code and status of each error kind.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Genre"), apperr.CodeNotFound, http.StatusNotFound},
		{"conflict", apperr.Conflict("dup"), apperr.CodeConflict, http.StatusConflict},
		{"validation", apperr.ValidationError("bad"), apperr.CodeValidation, http.StatusBadRequest},
		{"referential", apperr.Referential("in use"), apperr.CodeReferential, http.StatusConflict},
		{"rate_limited", apperr.RateLimited(3), apperr.CodeRateLimited, http.StatusTooManyRequests},
		{"internal", apperr.Internal(nil), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}

	assert.Equal(t, "Genre not found", apperr.NotFound("Genre").Error())
}

/*
TestWithCause copies the error and keeps the cause reachable.
*/
func TestWithCause(t *testing.T) {
	cause := errors.New("driver said no")
	base := apperr.Conflict("dup")
	withCause := base.WithCause(cause)

	assert.Nil(t, base.Cause)
	assert.ErrorIs(t, withCause, cause)

	wrapped := fmt.Errorf("outer: %w", withCause)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeConflict))
	assert.Same(t, withCause, apperr.As(wrapped))
	assert.False(t, apperr.HasCode(cause, apperr.CodeConflict))
}
