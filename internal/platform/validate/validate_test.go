// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Fantasy", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_ExactLen checks the fixed-length rule used for ISBNs.
*/
func TestValidator_ExactLen(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"thirteen_digits", "9780261102217", true},
		{"twelve", "978026110221", false},
		{"fourteen", "97802611022170", false},
		{"multibyte_counts_runes", "978026110221é", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.ExactLen("isbn", tt.value, 13)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks membership in an allowed set.
*/
func TestValidator_OneOf(t *testing.T) {
	allowed := []string{"maintenance", "on_loan", "available", "reserved"}

	assert.False(t, (&validate.Validator{}).OneOf("status", "on_loan", allowed...).HasErrors())

	v := (&validate.Validator{}).OneOf("status", "lost", allowed...)
	require.True(t, v.HasErrors())
	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Contains(t, ae.Details[0].Message, "maintenance, on_loan, available, reserved")
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("title", "The Hobbit").
		MaxLen("title", "The Hobbit", 200).
		ExactLen("isbn", "9780261102217", 13).
		UUID("instance_id", "3f2b8c1e-5a4d-4e6f-9b7a-2c1d0e9f8a7b").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").              // Fails
		ExactLen("isbn", "123", 13).        // Fails
		UUID("instance_id", "not-a-uuid"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
