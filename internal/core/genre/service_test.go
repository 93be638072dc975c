package genre_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/genre"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
	"github.com/taibuivan/locallibrary/internal/testutil"
)

/*
TestCreateGenre_CaseInsensitiveConflict rejects a second genre whose name
differs only by case, and keeps the original casing.
*/
func TestCreateGenre_CaseInsensitiveConflict(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()

	created, err := catalog.Services.Genres.CreateGenre(ctx, "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", created.Name)

	for _, variant := range []string{"fantasy", "FANTASY", "  fAnTaSy "} {
		_, err := catalog.Services.Genres.CreateGenre(ctx, variant)
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict), variant)
	}

	genres, err := catalog.Services.Genres.ListGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Fantasy", genres[0].Name)
}

/*
TestCreateGenre_UnicodeFolding treats non-ASCII case variants as the same name.
*/
func TestCreateGenre_UnicodeFolding(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()
	catalog.Genre(t, "Épopée")

	_, err := catalog.Services.Genres.CreateGenre(ctx, "ÉPOPÉE")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	// Combining accent normalises to the precomposed form
	_, err = catalog.Services.Genres.CreateGenre(ctx, "E\u0301pope\u0301e")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestCreateGenre_Validation rejects blank and oversized names.
*/
func TestCreateGenre_Validation(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()

	_, err := catalog.Services.Genres.CreateGenre(ctx, "  ")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = catalog.Services.Genres.CreateGenre(ctx, strings.Repeat("x", genre.MaxNameLength+1))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = catalog.Services.Genres.CreateGenre(ctx, strings.Repeat("x", genre.MaxNameLength))
	assert.NoError(t, err)
}

/*
TestCreateGenre_CaseVariantsProperty checks that for any ASCII name, every
case variant of an existing genre is refused.
*/
func TestCreateGenre_CaseVariantsProperty(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,30}[A-Za-z]`).Draw(rt, "name")
		upper := rapid.SliceOfN(rapid.Bool(), len(name), len(name)).Draw(rt, "upper")

		var variant strings.Builder
		for i, r := range name {
			if upper[i] {
				variant.WriteString(strings.ToUpper(string(r)))
			} else {
				variant.WriteString(strings.ToLower(string(r)))
			}
		}

		created, err := catalog.Services.Genres.CreateGenre(ctx, name)
		if err != nil {
			rt.Fatalf("create %q: %v", name, err)
		}
		defer func() { _ = catalog.Services.Genres.DeleteGenre(ctx, created.ID) }()

		_, err = catalog.Services.Genres.CreateGenre(ctx, variant.String())
		if !apperr.HasCode(err, apperr.CodeConflict) {
			rt.Fatalf("variant %q of %q: want CONFLICT, got %v", variant.String(), name, err)
		}
	})
}

/*
TestCreateGenre_ConcurrentVariants lets racing writers create case variants
of one name, including non-ASCII ones; exactly one wins on every backend.
*/
func TestCreateGenre_ConcurrentVariants(t *testing.T) {
	names := map[string][]string{
		"ascii":   {"Mystery", "mystery", "MYSTERY", "mYSTERY", "MyStErY", "mysterY"},
		"unicode": {"\u00c9pop\u00e9e", "\u00e9pop\u00e9e", "\u00c9POP\u00c9E", "E\u0301pope\u0301e", "e\u0301POPE\u0301E"},
	}

	for _, backend := range testutil.Backends() {
		for label, variants := range names {
			t.Run(backend.Name+"/"+label, func(t *testing.T) {
				catalog := testutil.NewCatalogOn(backend.Open(t), nil)
				ctx := context.Background()

				var wg sync.WaitGroup
				errs := make([]error, len(variants))
				for i, variant := range variants {
					wg.Add(1)
					go func(i int, variant string) {
						defer wg.Done()
						_, errs[i] = catalog.Services.Genres.CreateGenre(ctx, variant)
					}(i, variant)
				}
				wg.Wait()

				succeeded := 0
				for _, err := range errs {
					if err == nil {
						succeeded++
						continue
					}
					assert.True(t, apperr.HasCode(err, apperr.CodeConflict), err)
				}
				assert.Equal(t, 1, succeeded)

				genres, err := catalog.Services.Genres.ListGenres(ctx)
				require.NoError(t, err)
				assert.Len(t, genres, 1)
			})
		}
	}
}

/*
TestGenreNameKey_UniqueInStorage rejects a second row with the same folded key
even when the write bypasses the service checks.
*/
func TestGenreNameKey_UniqueInStorage(t *testing.T) {
	for _, backend := range testutil.Backends() {
		t.Run(backend.Name, func(t *testing.T) {
			db := backend.Open(t)
			ctx := context.Background()

			insert := func(name string) error {
				query, args, err := db.Insert(schema.Genre.Table).Rows(goqu.Record{
					schema.Genre.Name:    name,
					schema.Genre.NameKey: genre.FoldName(name),
				}).ToSQL()
				require.NoError(t, err)
				_, err = db.ExecContext(ctx, query, args...)
				return err
			}

			require.NoError(t, insert("\u00c9pop\u00e9e"))
			err := insert("\u00c9POP\u00c9E")
			require.Error(t, err)
			assert.True(t, dberr.IsUniqueViolation(err), err)

			require.NoError(t, insert("Fantasy"))
			assert.True(t, dberr.IsUniqueViolation(insert("FANTASY")))
		})
	}
}

/*
TestRenameGenre_UpdatesNameKey frees the old key and claims the new one.
*/
func TestRenameGenre_UpdatesNameKey(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()
	epic := catalog.Genre(t, "\u00c9pop\u00e9e")

	_, err := catalog.Services.Genres.RenameGenre(ctx, epic, "Saga")
	require.NoError(t, err)

	_, err = catalog.Services.Genres.CreateGenre(ctx, "\u00e9POP\u00c9E")
	require.NoError(t, err, "old key is released")

	_, err = catalog.Services.Genres.CreateGenre(ctx, "SAGA")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestRenameGenre applies the uniqueness rule but allows re-casing a genre's own name.
*/
func TestRenameGenre(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()
	scifi := catalog.Genre(t, "science fiction")
	catalog.Genre(t, "Horror")

	renamed, err := catalog.Services.Genres.RenameGenre(ctx, scifi, "Science Fiction")
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", renamed.Name)

	_, err = catalog.Services.Genres.RenameGenre(ctx, scifi, "horror")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = catalog.Services.Genres.RenameGenre(ctx, scifi+100, "Western")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	stored, err := catalog.Services.Genres.GetGenre(ctx, scifi)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", stored.Name)
}

/*
TestDeleteGenre removes the genre's links and leaves books and other links alone.
*/
func TestDeleteGenre(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()
	fantasy := catalog.Genre(t, "Fantasy")
	adventure := catalog.Genre(t, "Adventure")

	hobbit := catalog.Book(t, "The Hobbit", "9780261102217", nil, fantasy, adventure)

	require.NoError(t, catalog.Services.Genres.DeleteGenre(ctx, fantasy))

	stored, err := catalog.Services.Books.GetBook(ctx, hobbit.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{adventure}, stored.GenreIDs)
	assert.Equal(t, []book.GenreRef{{ID: adventure, Name: "Adventure"}}, stored.Genres)

	err = catalog.Services.Genres.DeleteGenre(ctx, fantasy)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestListGenres orders by name ignoring case.
*/
func TestListGenres(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	catalog.Genre(t, "horror")
	catalog.Genre(t, "Comedy")
	catalog.Genre(t, "Biography")

	genres, err := catalog.Services.Genres.ListGenres(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(genres))
	for _, genre := range genres {
		names = append(names, genre.Name)
	}
	assert.Equal(t, []string{"Biography", "Comedy", "horror"}, names)
}
