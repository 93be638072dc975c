package genre

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

var errNotFound = apperr.NotFound("Genre")

func errNameTaken(name string) error {
	return apperr.Conflict(fmt.Sprintf("Genre %q already exists (case insensitive match)", name))
}

type SQLRepository struct {
	db *database.DB
}

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (repository *SQLRepository) ListGenres(context context.Context) ([]*Genre, error) {
	query := repository.db.From(schema.Genre.Table).
		Select(schema.Genre.Columns()...).
		Order(goqu.Func("LOWER", goqu.C(schema.Genre.Name)).Asc(), goqu.C(schema.Genre.ID).Asc())

	genres := make([]*Genre, 0)
	if err := database.Select(context, repository.db, &genres, query); err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	return genres, nil
}

func (repository *SQLRepository) GetGenre(context context.Context, id int64) (*Genre, error) {
	query := repository.db.From(schema.Genre.Table).
		Select(schema.Genre.Columns()...).
		Where(goqu.C(schema.Genre.ID).Eq(id))

	genre := &Genre{}
	if err := database.Get(context, repository.db, genre, query); err != nil {
		if dberr.IsNoRows(err) {
			return nil, errNotFound
		}
		return nil, dberr.Wrap(err, "get_genre")
	}
	return genre, nil
}

func (repository *SQLRepository) CreateGenre(context context.Context, genre *Genre) error {
	err := repository.db.WithTx(context, "create_genre", func(tx *sqlx.Tx) error {
		if err := repository.ensureNameFree(context, tx, genre.Name, 0); err != nil {
			return err
		}

		id, err := repository.db.InsertID(context, tx, repository.db.Insert(schema.Genre.Table).
			Rows(record(genre)))
		if err != nil {
			// A concurrent writer won the race past the pre-check
			if dberr.IsUniqueViolation(err) {
				return errNameTaken(genre.Name)
			}
			return dberr.Wrap(err, "insert_genre")
		}

		genre.ID = id
		return nil
	})

	return dberr.Wrap(err, "create_genre")
}

func (repository *SQLRepository) RenameGenre(context context.Context, genre *Genre) error {
	err := repository.db.WithTx(context, "rename_genre", func(tx *sqlx.Tx) error {
		if err := repository.ensureNameFree(context, tx, genre.Name, genre.ID); err != nil {
			return err
		}

		affected, err := database.ExecAffected(context, tx, repository.db.Update(schema.Genre.Table).
			Set(record(genre)).
			Where(goqu.C(schema.Genre.ID).Eq(genre.ID)))
		if err != nil {
			if dberr.IsUniqueViolation(err) {
				return errNameTaken(genre.Name)
			}
			return dberr.Wrap(err, "update_genre")
		}
		if affected == 0 {
			return errNotFound
		}
		return nil
	})

	return dberr.Wrap(err, "rename_genre")
}

func (repository *SQLRepository) DeleteGenre(context context.Context, id int64) error {
	err := repository.db.WithTx(context, "delete_genre", func(tx *sqlx.Tx) error {

		// 1. Drop the links explicitly; the FK cascade is only a backstop
		if _, err := database.Exec(context, tx, repository.db.Delete(schema.BookGenre.Table).
			Where(goqu.C(schema.BookGenre.GenreID).Eq(id))); err != nil {
			return dberr.Wrap(err, "delete_genre_links")
		}

		// 2. Delete the genre itself
		affected, err := database.ExecAffected(context, tx, repository.db.Delete(schema.Genre.Table).
			Where(goqu.C(schema.Genre.ID).Eq(id)))
		if err != nil {
			return dberr.Wrap(err, "delete_genre")
		}
		if affected == 0 {
			return errNotFound
		}
		return nil
	})

	return dberr.Wrap(err, "delete_genre")
}

// ensureNameFree fails with CONFLICT when a genre other than excludeID has
// the same folded name key. The unique index on name_key enforces the same
// rule for writers racing past this check.
func (repository *SQLRepository) ensureNameFree(context context.Context, tx *sqlx.Tx, name string, excludeID int64) error {
	taken, err := database.Exists(context, tx, repository.db.From(schema.Genre.Table).Where(
		goqu.C(schema.Genre.NameKey).Eq(FoldName(name)),
		goqu.C(schema.Genre.ID).Neq(excludeID),
	))
	if err != nil {
		return dberr.Wrap(err, "check_genre_name")
	}
	if taken {
		return errNameTaken(name)
	}
	return nil
}

// record maps the writable columns of genre, including its folded key.
func record(genre *Genre) goqu.Record {
	return goqu.Record{
		schema.Genre.Name:    genre.Name,
		schema.Genre.NameKey: FoldName(genre.Name),
	}
}
