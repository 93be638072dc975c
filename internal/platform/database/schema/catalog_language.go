// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LanguageTable represents the 'catalog_language' table
type LanguageTable struct {
	Table string
	ID    string
	Name  string
}

// Language is the schema definition for book languages.
var Language = LanguageTable{
	Table: "catalog_language",
	ID:    "id",
	Name:  "name",
}

// Columns returns the select list for a full row.
func (t LanguageTable) Columns() []interface{} {
	return columns(t.ID, t.Name)
}
