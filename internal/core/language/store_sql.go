package language

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

var errNotFound = apperr.NotFound("Language")

type SQLRepository struct {
	db *database.DB
}

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (repository *SQLRepository) ListLanguages(context context.Context) ([]*Language, error) {
	query := repository.db.From(schema.Language.Table).
		Select(schema.Language.Columns()...).
		Order(goqu.C(schema.Language.Name).Asc(), goqu.C(schema.Language.ID).Asc())

	languages := make([]*Language, 0)
	if err := database.Select(context, repository.db, &languages, query); err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}
	return languages, nil
}

func (repository *SQLRepository) GetLanguage(context context.Context, id int64) (*Language, error) {
	query := repository.db.From(schema.Language.Table).
		Select(schema.Language.Columns()...).
		Where(goqu.C(schema.Language.ID).Eq(id))

	language := &Language{}
	if err := database.Get(context, repository.db, language, query); err != nil {
		if dberr.IsNoRows(err) {
			return nil, errNotFound
		}
		return nil, dberr.Wrap(err, "get_language")
	}
	return language, nil
}

func (repository *SQLRepository) CreateLanguage(context context.Context, language *Language) error {
	insert := repository.db.Insert(schema.Language.Table).
		Rows(goqu.Record{schema.Language.Name: language.Name})

	id, err := repository.db.InsertID(context, repository.db, insert)
	if err != nil {
		return dberr.Wrap(err, "create_language")
	}

	language.ID = id
	return nil
}

func (repository *SQLRepository) RenameLanguage(context context.Context, language *Language) error {
	update := repository.db.Update(schema.Language.Table).
		Set(goqu.Record{schema.Language.Name: language.Name}).
		Where(goqu.C(schema.Language.ID).Eq(language.ID))

	affected, err := database.ExecAffected(context, repository.db, update)
	if err != nil {
		return dberr.Wrap(err, "rename_language")
	}
	if affected == 0 {
		return errNotFound
	}
	return nil
}

func (repository *SQLRepository) DeleteLanguage(context context.Context, id int64) error {
	err := repository.db.WithTx(context, "delete_language", func(tx *sqlx.Tx) error {

		// 1. Count dependent books inside the transaction
		books, err := database.Count(context, tx, repository.db.From(schema.Book.Table).
			Where(goqu.C(schema.Book.LanguageID).Eq(id)))
		if err != nil {
			return dberr.Wrap(err, "count_language_books")
		}
		if books > 0 {
			return apperr.Referential(fmt.Sprintf("Language is used by %d book(s)", books))
		}

		// 2. Delete; the FK RESTRICT still guards against a concurrent insert
		affected, err := database.ExecAffected(context, tx, repository.db.Delete(schema.Language.Table).
			Where(goqu.C(schema.Language.ID).Eq(id)))
		if err != nil {
			return dberr.Wrap(err, "delete_language")
		}
		if affected == 0 {
			return errNotFound
		}
		return nil
	})

	return dberr.Wrap(err, "delete_language")
}
