// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// GenreTable represents the 'catalog_genre' table
type GenreTable struct {
	Table string
	ID    string
	Name  string

	// NameKey holds the case-folded name; unique through NameKeyIndex.
	NameKey      string
	NameKeyIndex string
}

// Genre is the schema definition for book genres.
var Genre = GenreTable{
	Table:        "catalog_genre",
	ID:           "id",
	Name:         "name",
	NameKey:      "name_key",
	NameKeyIndex: "catalog_genre_name_key",
}

// Columns returns the select list for a full row.
func (t GenreTable) Columns() []interface{} {
	return columns(t.ID, t.Name)
}
