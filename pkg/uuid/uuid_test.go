// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/uuid"
)

/*
TestNew verifies that copy ids are random (v4) and distinct.
*/
func TestNew(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		id := uuid.New()
		assert.True(t, uuid.IsValid(id))
		assert.Equal(t, 4, uuid.Version(id))
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

/*
TestNewTimeOrdered verifies request ids are v7.
*/
func TestNewTimeOrdered(t *testing.T) {
	assert.Equal(t, 7, uuid.Version(uuid.NewTimeOrdered()))
}

/*
TestIsValid rejects non-canonical forms.
*/
func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"canonical", "3f2b8c1e-5a4d-4e6f-9b7a-2c1d0e9f8a7b", true},
		{"braced", "{3f2b8c1e-5a4d-4e6f-9b7a-2c1d0e9f8a7b}", false},
		{"urn", "urn:uuid:3f2b8c1e-5a4d-4e6f-9b7a-2c1d0e9f8a7b", false},
		{"garbage", "not-a-uuid", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uuid.IsValid(tt.value))
		})
	}
}
