package book

import "strings"

// Book is the title-level record shared by every physical copy.
type Book struct {
	ID         int64  `json:"id"          db:"id"`
	Title      string `json:"title"       db:"title"`
	AuthorID   *int64 `json:"author_id"   db:"author_id"`
	LanguageID *int64 `json:"language_id" db:"language_id"`
	Summary    string `json:"summary"     db:"summary"`
	ISBN       string `json:"isbn"        db:"isbn"`

	// GenreIDs is the set of linked genres. On write it replaces the stored set.
	GenreIDs []int64 `json:"genre_ids" db:"-"`

	// Genres is populated on read, ordered by name.
	Genres []GenreRef `json:"genres" db:"-"`
}

// GenreRef is a linked genre as shown alongside a book.
type GenreRef struct {
	ID   int64  `json:"id"   db:"genre_id"`
	Name string `json:"name" db:"name"`
}

// DisplayGenre joins the names of the first three genres, the short form
// used in catalog listings.
func (book *Book) DisplayGenre() string {
	names := make([]string, 0, displayGenreCount)
	for _, genre := range book.Genres {
		if len(names) == displayGenreCount {
			break
		}
		names = append(names, genre.Name)
	}
	return strings.Join(names, ", ")
}

// Filter narrows ListBooks. Nil fields are ignored.
type Filter struct {
	AuthorID   *int64
	GenreID    *int64
	LanguageID *int64
}

// Global field names for validation
const (
	FieldTitle      = "title"
	FieldAuthorID   = "author_id"
	FieldLanguageID = "language_id"
	FieldSummary    = "summary"
	FieldISBN       = "isbn"
	FieldGenreIDs   = "genre_ids"
)

const (
	MaxTitleLength   = 200
	MaxSummaryLength = 1000
	ISBNLength       = 13

	displayGenreCount = 3
)
