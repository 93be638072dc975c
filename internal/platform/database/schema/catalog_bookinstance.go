// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BookInstanceTable represents the 'catalog_bookinstance' table
type BookInstanceTable struct {
	Table   string
	ID      string
	BookID  string
	Imprint string
	DueBack string
	Status  string
}

// BookInstance is the schema definition for physical copies.
var BookInstance = BookInstanceTable{
	Table:   "catalog_bookinstance",
	ID:      "id",
	BookID:  "book_id",
	Imprint: "imprint",
	DueBack: "due_back",
	Status:  "status",
}

// Columns returns the select list for a full row.
func (t BookInstanceTable) Columns() []interface{} {
	return columns(t.ID, t.BookID, t.Imprint, t.DueBack, t.Status)
}
