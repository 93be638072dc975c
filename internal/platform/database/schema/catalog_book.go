// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BookTable represents the 'catalog_book' table
type BookTable struct {
	Table      string
	ID         string
	Title      string
	AuthorID   string
	LanguageID string
	Summary    string
	ISBN       string
}

// Book is the schema definition for title-level book records.
var Book = BookTable{
	Table:      "catalog_book",
	ID:         "id",
	Title:      "title",
	AuthorID:   "author_id",
	LanguageID: "language_id",
	Summary:    "summary",
	ISBN:       "isbn",
}

// Columns returns the select list for a full row.
func (t BookTable) Columns() []interface{} {
	return columns(t.ID, t.Title, t.AuthorID, t.LanguageID, t.Summary, t.ISBN)
}

// BookGenreTable represents the 'catalog_book_genre' junction table
type BookGenreTable struct {
	Table   string
	BookID  string
	GenreID string
}

// BookGenre links books to genres (many-to-many).
var BookGenre = BookGenreTable{
	Table:   "catalog_book_genre",
	BookID:  "book_id",
	GenreID: "genre_id",
}
