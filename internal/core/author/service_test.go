package author_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/testutil"
	"github.com/taibuivan/locallibrary/pkg/date"
)

/*
TestCreateAuthor_Dates stores optional life dates and rejects a death before birth.
*/
func TestCreateAuthor_Dates(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()

	tolkien := &author.Author{
		FirstName:   "J.R.R.",
		LastName:    "Tolkien",
		DateOfBirth: testutil.Ptr(date.MustParse("1892-01-03")),
		DateOfDeath: testutil.Ptr(date.MustParse("1973-09-02")),
	}
	require.NoError(t, catalog.Services.Authors.CreateAuthor(ctx, tolkien))

	stored, err := catalog.Services.Authors.GetAuthor(ctx, tolkien.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tolkien, J.R.R.", stored.DisplayName())
	require.NotNil(t, stored.DateOfBirth)
	assert.Equal(t, "1892-01-03", stored.DateOfBirth.String())
	require.NotNil(t, stored.DateOfDeath)
	assert.Equal(t, "1973-09-02", stored.DateOfDeath.String())

	invalid := &author.Author{
		FirstName:   "Back",
		LastName:    "Wards",
		DateOfBirth: testutil.Ptr(date.MustParse("2000-01-02")),
		DateOfDeath: testutil.Ptr(date.MustParse("2000-01-01")),
	}
	err = catalog.Services.Authors.CreateAuthor(ctx, invalid)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestCreateAuthor_Validation requires both names within the length limit.
*/
func TestCreateAuthor_Validation(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		author author.Author
	}{
		{"missing_first", author.Author{LastName: "Austen"}},
		{"missing_last", author.Author{FirstName: "Jane"}},
		{"blank_names", author.Author{FirstName: " ", LastName: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.Services.Authors.CreateAuthor(ctx, &tt.author)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestListAuthors orders by last name, first name, then id, and allows duplicates.
*/
func TestListAuthors(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	catalog.Author(t, "Terry", "Pratchett")
	firstJane := catalog.Author(t, "Jane", "Austen")
	catalog.Author(t, "Anne", "Austen")
	secondJane := catalog.Author(t, "Jane", "Austen")

	authors, err := catalog.Services.Authors.ListAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 4)

	assert.Equal(t, "Austen, Anne", authors[0].DisplayName())
	assert.Equal(t, firstJane, authors[1].ID)
	assert.Equal(t, secondJane, authors[2].ID)
	assert.Equal(t, "Pratchett, Terry", authors[3].DisplayName())
}

/*
TestUpdateAuthor replaces fields and clears dates.
*/
func TestUpdateAuthor(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()

	created := &author.Author{FirstName: "Isaac", LastName: "Asimov", DateOfBirth: testutil.Ptr(date.MustParse("1920-01-02"))}
	require.NoError(t, catalog.Services.Authors.CreateAuthor(ctx, created))

	require.NoError(t, catalog.Services.Authors.UpdateAuthor(ctx, created.ID, &author.Author{FirstName: "Isaac", LastName: "Asimov"}))

	stored, err := catalog.Services.Authors.GetAuthor(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DateOfBirth)

	err = catalog.Services.Authors.UpdateAuthor(ctx, created.ID+100, &author.Author{FirstName: "A", LastName: "B"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestDeleteAuthor_Restrict blocks deletion while a book references the author.
*/
func TestDeleteAuthor_Restrict(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()
	tolkien := catalog.Author(t, "J.R.R.", "Tolkien")
	hobbit := catalog.Book(t, "The Hobbit", "9780261102217", &tolkien)

	err := catalog.Services.Authors.DeleteAuthor(ctx, tolkien)
	assert.True(t, apperr.HasCode(err, apperr.CodeReferential))

	_, err = catalog.Services.Authors.GetAuthor(ctx, tolkien)
	require.NoError(t, err)

	require.NoError(t, catalog.Services.Books.DeleteBook(ctx, hobbit.ID))
	require.NoError(t, catalog.Services.Authors.DeleteAuthor(ctx, tolkien))

	err = catalog.Services.Authors.DeleteAuthor(ctx, tolkien)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
