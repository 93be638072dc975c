// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names every catalog table and column once so that
// repositories never spell identifiers inline.
//
// Table names follow the catalog_<model> layout of the originating schema.
package schema

// columns converts identifier names to goqu select arguments.
func columns(names ...string) []interface{} {
	out := make([]interface{}, len(names))
	for i, name := range names {
		out[i] = name
	}
	return out
}
