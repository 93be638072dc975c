// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// AuthorTable represents the 'catalog_author' table
type AuthorTable struct {
	Table       string
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth string
	DateOfDeath string
}

// Author is the schema definition for book authors.
var Author = AuthorTable{
	Table:       "catalog_author",
	ID:          "id",
	FirstName:   "first_name",
	LastName:    "last_name",
	DateOfBirth: "date_of_birth",
	DateOfDeath: "date_of_death",
}

// Columns returns the select list for a full row.
func (t AuthorTable) Columns() []interface{} {
	return columns(t.ID, t.FirstName, t.LastName, t.DateOfBirth, t.DateOfDeath)
}
