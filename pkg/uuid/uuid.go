// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the identifier generators used across the platform.

It wraps the standard UUID library with the two flavours the catalog needs:

  - Random (v4): physical copy ids. Unguessable, no ordering leaks.
  - Time-ordered (v7): request correlation ids, sortable by creation time.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

// NewTimeOrdered generates a new UUIDv7 string, falling back to v4 if the
// clock-based generator fails.
func NewTimeOrdered() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// # Parsing

// IsValid reports whether s is a canonical hyphenated UUID of any version.
func IsValid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Version returns the version nibble of s, or 0 if s is not a UUID.
func Version(s string) int {
	id, err := uuid.Parse(s)
	if err != nil {
		return 0
	}
	return int(id.Version())
}
