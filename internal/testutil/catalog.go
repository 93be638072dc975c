// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/app"
	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/platform/database"
)

// Catalog is a fresh store with every service wired on top of it.
type Catalog struct {
	DB       *database.DB
	Services *app.Services
}

// NewCatalog opens a fresh SQLite catalog. feed may be nil.
func NewCatalog(t testing.TB, feed instance.Feed) *Catalog {
	t.Helper()
	return NewCatalogOn(NewTestDB(t), feed)
}

// NewCatalogOn wires every service on db. feed may be nil.
func NewCatalogOn(db *database.DB, feed instance.Feed) *Catalog {
	return &Catalog{DB: db, Services: app.NewServices(db, feed, DiscardLogger())}
}

// # Seeding helpers

func (catalog *Catalog) Language(t testing.TB, name string) int64 {
	t.Helper()
	created, err := catalog.Services.Languages.CreateLanguage(context.Background(), name)
	require.NoError(t, err)
	return created.ID
}

func (catalog *Catalog) Genre(t testing.TB, name string) int64 {
	t.Helper()
	created, err := catalog.Services.Genres.CreateGenre(context.Background(), name)
	require.NoError(t, err)
	return created.ID
}

func (catalog *Catalog) Author(t testing.TB, first, last string) int64 {
	t.Helper()
	created := &author.Author{FirstName: first, LastName: last}
	require.NoError(t, catalog.Services.Authors.CreateAuthor(context.Background(), created))
	return created.ID
}

// Book creates a book with a 13 character isbn and the given genres.
func (catalog *Catalog) Book(t testing.TB, title, isbn string, authorID *int64, genreIDs ...int64) *book.Book {
	t.Helper()
	created, err := catalog.Services.Books.CreateBook(context.Background(), &book.Book{
		Title:    title,
		ISBN:     isbn,
		AuthorID: authorID,
		Summary:  title + " summary",
		GenreIDs: genreIDs,
	})
	require.NoError(t, err)
	return created
}

func (catalog *Catalog) Instance(t testing.TB, bookID int64, imprint string) *instance.Instance {
	t.Helper()
	created, err := catalog.Services.Instances.CreateInstance(context.Background(), &bookID, imprint)
	require.NoError(t, err)
	return created
}

// Ptr returns a pointer to value.
func Ptr[T any](value T) *T {
	return &value
}
