package stats

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/platform/database"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

type SQLRepository struct {
	db *database.DB
}

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (repository *SQLRepository) CountBooks(context context.Context) (int, error) {
	return repository.count(context, "count_books", repository.db.From(schema.Book.Table))
}

func (repository *SQLRepository) CountInstances(context context.Context) (int, error) {
	return repository.count(context, "count_instances", repository.db.From(schema.BookInstance.Table))
}

func (repository *SQLRepository) CountAvailableInstances(context context.Context) (int, error) {
	return repository.count(context, "count_available_instances", repository.db.From(schema.BookInstance.Table).
		Where(goqu.C(schema.BookInstance.Status).Eq(string(instance.StatusAvailable))))
}

func (repository *SQLRepository) CountAuthors(context context.Context) (int, error) {
	return repository.count(context, "count_authors", repository.db.From(schema.Author.Table))
}

func (repository *SQLRepository) CountGenres(context context.Context) (int, error) {
	return repository.count(context, "count_genres", repository.db.From(schema.Genre.Table))
}

func (repository *SQLRepository) CountBooksMatchingTitle(context context.Context, substring string, caseInsensitive bool) (int, error) {
	return repository.count(context, "count_books_matching_title", repository.db.From(schema.Book.Table).
		Where(repository.db.Contains(schema.Book.Title, substring, caseInsensitive)))
}

func (repository *SQLRepository) count(context context.Context, action string, query *goqu.SelectDataset) (int, error) {
	total, err := database.Count(context, repository.db, query)
	if err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return total, nil
}
