package author

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

var errNotFound = apperr.NotFound("Author")

type SQLRepository struct {
	db *database.DB
}

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (repository *SQLRepository) ListAuthors(context context.Context) ([]*Author, error) {
	query := repository.db.From(schema.Author.Table).
		Select(schema.Author.Columns()...).
		Order(
			goqu.C(schema.Author.LastName).Asc(),
			goqu.C(schema.Author.FirstName).Asc(),
			goqu.C(schema.Author.ID).Asc(),
		)

	authors := make([]*Author, 0)
	if err := database.Select(context, repository.db, &authors, query); err != nil {
		return nil, dberr.Wrap(err, "list_authors")
	}
	return authors, nil
}

func (repository *SQLRepository) GetAuthor(context context.Context, id int64) (*Author, error) {
	query := repository.db.From(schema.Author.Table).
		Select(schema.Author.Columns()...).
		Where(goqu.C(schema.Author.ID).Eq(id))

	a := &Author{}
	if err := database.Get(context, repository.db, a, query); err != nil {
		if dberr.IsNoRows(err) {
			return nil, errNotFound
		}
		return nil, dberr.Wrap(err, "get_author")
	}
	return a, nil
}

func (repository *SQLRepository) CreateAuthor(context context.Context, a *Author) error {
	insert := repository.db.Insert(schema.Author.Table).Rows(record(a))

	id, err := repository.db.InsertID(context, repository.db, insert)
	if err != nil {
		return dberr.Wrap(err, "create_author")
	}

	a.ID = id
	return nil
}

func (repository *SQLRepository) UpdateAuthor(context context.Context, a *Author) error {
	update := repository.db.Update(schema.Author.Table).
		Set(record(a)).
		Where(goqu.C(schema.Author.ID).Eq(a.ID))

	affected, err := database.ExecAffected(context, repository.db, update)
	if err != nil {
		return dberr.Wrap(err, "update_author")
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}

func (repository *SQLRepository) DeleteAuthor(context context.Context, id int64) error {
	err := repository.db.WithTx(context, "delete_author", func(tx *sqlx.Tx) error {

		// 1. Count dependent books inside the transaction
		books, err := database.Count(context, tx, repository.db.From(schema.Book.Table).
			Where(goqu.C(schema.Book.AuthorID).Eq(id)))
		if err != nil {
			return dberr.Wrap(err, "count_author_books")
		}
		if books > 0 {
			return apperr.Referential(fmt.Sprintf("Author is referenced by %d book(s)", books))
		}

		// 2. Delete; the FK RESTRICT still guards against a concurrent insert
		affected, err := database.ExecAffected(context, tx, repository.db.Delete(schema.Author.Table).
			Where(goqu.C(schema.Author.ID).Eq(id)))
		if err != nil {
			return dberr.Wrap(err, "delete_author")
		}
		if affected == 0 {
			return errNotFound
		}
		return nil
	})

	return dberr.Wrap(err, "delete_author")
}

// record maps the writable columns of a.
func record(a *Author) goqu.Record {
	return goqu.Record{
		schema.Author.FirstName:   a.FirstName,
		schema.Author.LastName:    a.LastName,
		schema.Author.DateOfBirth: database.Nullable(a.DateOfBirth),
		schema.Author.DateOfDeath: database.Nullable(a.DateOfDeath),
	}
}
