package language_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/testutil"
)

/*
TestCreateLanguage_Validation rejects blank and oversized names.
*/
func TestCreateLanguage_Validation(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"plain", "English", true},
		{"trimmed", "  French  ", true},
		{"blank", "   ", false},
		{"too_long", strings.Repeat("a", 201), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := catalog.Services.Languages.CreateLanguage(ctx, tt.input)
			if !tt.ok {
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
		})
	}
}

/*
TestLanguage_DuplicateNamesAllowed confirms language names carry no uniqueness rule.
*/
func TestLanguage_DuplicateNamesAllowed(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)

	first := catalog.Language(t, "English")
	second := catalog.Language(t, "English")
	assert.NotEqual(t, first, second)
}

/*
TestRenameLanguage updates the name and reports unknown ids.
*/
func TestRenameLanguage(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()
	id := catalog.Language(t, "Englsh")

	renamed, err := catalog.Services.Languages.RenameLanguage(ctx, id, "English")
	require.NoError(t, err)
	assert.Equal(t, "English", renamed.Name)

	stored, err := catalog.Services.Languages.GetLanguage(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "English", stored.Name)

	_, err = catalog.Services.Languages.RenameLanguage(ctx, id+100, "German")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestDeleteLanguage_Restrict blocks deletion while a book uses the language.
*/
func TestDeleteLanguage_Restrict(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	ctx := context.Background()
	id := catalog.Language(t, "English")

	created := catalog.Book(t, "Dune", "9780441013593", nil)
	created.LanguageID = &id
	_, err := catalog.Services.Books.UpdateBook(ctx, created.ID, created)
	require.NoError(t, err)

	err = catalog.Services.Languages.DeleteLanguage(ctx, id)
	assert.True(t, apperr.HasCode(err, apperr.CodeReferential))

	_, err = catalog.Services.Languages.GetLanguage(ctx, id)
	require.NoError(t, err, "a refused delete leaves the language in place")

	require.NoError(t, catalog.Services.Books.DeleteBook(ctx, created.ID))
	require.NoError(t, catalog.Services.Languages.DeleteLanguage(ctx, id))

	err = catalog.Services.Languages.DeleteLanguage(ctx, id)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestListLanguages orders by name.
*/
func TestListLanguages(t *testing.T) {
	catalog := testutil.NewCatalog(t, nil)
	catalog.Language(t, "Spanish")
	catalog.Language(t, "English")
	catalog.Language(t, "French")

	languages, err := catalog.Services.Languages.ListLanguages(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(languages))
	for _, language := range languages {
		names = append(names, language.Name)
	}
	assert.Equal(t, []string{"English", "French", "Spanish"}, names)
}
