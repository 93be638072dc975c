package book

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/database"
	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/dberr"
)

var errNotFound = apperr.NotFound("Book")

func errISBNTaken(isbn string) error {
	return apperr.Conflict(fmt.Sprintf("ISBN %s is already assigned to another book", isbn))
}

type SQLRepository struct {
	db *database.DB
}

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// # Reads

func (repository *SQLRepository) ListBooks(context context.Context, filter Filter) ([]*Book, error) {
	query := repository.db.From(schema.Book.Table).
		Select(schema.Book.Columns()...).
		Order(goqu.C(schema.Book.Title).Asc(), goqu.C(schema.Book.ID).Asc())

	if filter.AuthorID != nil {
		query = query.Where(goqu.C(schema.Book.AuthorID).Eq(*filter.AuthorID))
	}

	if filter.LanguageID != nil {
		query = query.Where(goqu.C(schema.Book.LanguageID).Eq(*filter.LanguageID))
	}

	if filter.GenreID != nil {
		linked := repository.db.From(schema.BookGenre.Table).
			Select(schema.BookGenre.BookID).
			Where(goqu.C(schema.BookGenre.GenreID).Eq(*filter.GenreID))
		query = query.Where(goqu.C(schema.Book.ID).In(linked))
	}

	books := make([]*Book, 0)
	if err := database.Select(context, repository.db, &books, query); err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}

	if err := repository.attachGenres(context, repository.db, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (repository *SQLRepository) GetBook(context context.Context, id int64) (*Book, error) {
	query := repository.db.From(schema.Book.Table).
		Select(schema.Book.Columns()...).
		Where(goqu.C(schema.Book.ID).Eq(id))

	book := &Book{}
	if err := database.Get(context, repository.db, book, query); err != nil {
		if dberr.IsNoRows(err) {
			return nil, errNotFound
		}
		return nil, dberr.Wrap(err, "get_book")
	}

	if err := repository.attachGenres(context, repository.db, []*Book{book}); err != nil {
		return nil, err
	}
	return book, nil
}

// # Writes

func (repository *SQLRepository) CreateBook(context context.Context, book *Book) error {
	err := repository.db.WithTx(context, "create_book", func(tx *sqlx.Tx) error {
		if err := repository.checkReferences(context, tx, book); err != nil {
			return err
		}

		if err := repository.ensureISBNFree(context, tx, book.ISBN, 0); err != nil {
			return err
		}

		id, err := repository.db.InsertID(context, tx, repository.db.Insert(schema.Book.Table).Rows(record(book)))
		if err != nil {
			return classifyWrite(err, book, "insert_book")
		}
		book.ID = id

		return repository.replaceGenres(context, tx, book)
	})

	return dberr.Wrap(err, "create_book")
}

func (repository *SQLRepository) UpdateBook(context context.Context, book *Book) error {
	err := repository.db.WithTx(context, "update_book", func(tx *sqlx.Tx) error {

		// 1. The book must exist; lock it where the store supports row locks
		current := repository.db.From(schema.Book.Table).
			Select(schema.Book.ID).
			Where(goqu.C(schema.Book.ID).Eq(book.ID))
		if repository.db.SupportsRowLocks() {
			current = current.ForUpdate(exp.Wait)
		}

		var id int64
		if err := database.Get(context, tx, &id, current); err != nil {
			if dberr.IsNoRows(err) {
				return errNotFound
			}
			return dberr.Wrap(err, "lock_book")
		}

		// 2. Same reference and uniqueness rules as creation
		if err := repository.checkReferences(context, tx, book); err != nil {
			return err
		}

		if err := repository.ensureISBNFree(context, tx, book.ISBN, book.ID); err != nil {
			return err
		}

		// 3. Row, then links
		update := repository.db.Update(schema.Book.Table).
			Set(record(book)).
			Where(goqu.C(schema.Book.ID).Eq(book.ID))
		if _, err := database.Exec(context, tx, update); err != nil {
			return classifyWrite(err, book, "update_book")
		}

		return repository.replaceGenres(context, tx, book)
	})

	return dberr.Wrap(err, "update_book")
}

func (repository *SQLRepository) DeleteBook(context context.Context, id int64) error {
	err := repository.db.WithTx(context, "delete_book", func(tx *sqlx.Tx) error {

		// 1. Copies block the delete
		copies, err := database.Count(context, tx, repository.db.From(schema.BookInstance.Table).
			Where(goqu.C(schema.BookInstance.BookID).Eq(id)))
		if err != nil {
			return dberr.Wrap(err, "count_book_instances")
		}
		if copies > 0 {
			return apperr.Referential(fmt.Sprintf("Book has %d copy(ies) in the ledger", copies))
		}

		// 2. Links, then the book
		if _, err := database.Exec(context, tx, repository.db.Delete(schema.BookGenre.Table).
			Where(goqu.C(schema.BookGenre.BookID).Eq(id))); err != nil {
			return dberr.Wrap(err, "delete_book_genres")
		}

		affected, err := database.ExecAffected(context, tx, repository.db.Delete(schema.Book.Table).
			Where(goqu.C(schema.Book.ID).Eq(id)))
		if err != nil {
			return dberr.Wrap(err, "delete_book")
		}
		if affected == 0 {
			return errNotFound
		}
		return nil
	})

	return dberr.Wrap(err, "delete_book")
}

// # Helpers

// checkReferences resolves the author, language and every genre id inside
// the write transaction.
func (repository *SQLRepository) checkReferences(context context.Context, tx *sqlx.Tx, book *Book) error {
	if book.AuthorID != nil {
		found, err := database.Exists(context, tx, repository.db.From(schema.Author.Table).
			Where(goqu.C(schema.Author.ID).Eq(*book.AuthorID)))
		if err != nil {
			return dberr.Wrap(err, "check_book_author")
		}
		if !found {
			return apperr.NotFound(fmt.Sprintf("Author %d", *book.AuthorID))
		}
	}

	if book.LanguageID != nil {
		found, err := database.Exists(context, tx, repository.db.From(schema.Language.Table).
			Where(goqu.C(schema.Language.ID).Eq(*book.LanguageID)))
		if err != nil {
			return dberr.Wrap(err, "check_book_language")
		}
		if !found {
			return apperr.NotFound(fmt.Sprintf("Language %d", *book.LanguageID))
		}
	}

	if len(book.GenreIDs) == 0 {
		return nil
	}

	known := make([]int64, 0, len(book.GenreIDs))
	if err := database.Select(context, tx, &known, repository.db.From(schema.Genre.Table).
		Select(schema.Genre.ID).
		Where(goqu.C(schema.Genre.ID).In(book.GenreIDs))); err != nil {
		return dberr.Wrap(err, "check_book_genres")
	}

	if len(known) != len(book.GenreIDs) {
		present := make(map[int64]struct{}, len(known))
		for _, id := range known {
			present[id] = struct{}{}
		}
		for _, id := range book.GenreIDs {
			if _, ok := present[id]; !ok {
				return apperr.NotFound(fmt.Sprintf("Genre %d", id))
			}
		}
	}
	return nil
}

// ensureISBNFree fails with CONFLICT when a book other than excludeID holds isbn.
func (repository *SQLRepository) ensureISBNFree(context context.Context, tx *sqlx.Tx, isbn string, excludeID int64) error {
	taken, err := database.Exists(context, tx, repository.db.From(schema.Book.Table).Where(
		goqu.C(schema.Book.ISBN).Eq(isbn),
		goqu.C(schema.Book.ID).Neq(excludeID),
	))
	if err != nil {
		return dberr.Wrap(err, "check_book_isbn")
	}
	if taken {
		return errISBNTaken(isbn)
	}
	return nil
}

// replaceGenres swaps the stored genre set of book for book.GenreIDs.
func (repository *SQLRepository) replaceGenres(context context.Context, tx *sqlx.Tx, book *Book) error {

	// 1. Delete existing links
	if _, err := database.Exec(context, tx, repository.db.Delete(schema.BookGenre.Table).
		Where(goqu.C(schema.BookGenre.BookID).Eq(book.ID))); err != nil {
		return dberr.Wrap(err, "clear_book_genres")
	}

	if len(book.GenreIDs) == 0 {
		return nil
	}

	// 2. Insert the new set as one multi-row statement
	rows := make([]interface{}, 0, len(book.GenreIDs))
	for _, genreID := range book.GenreIDs {
		rows = append(rows, goqu.Record{
			schema.BookGenre.BookID:  book.ID,
			schema.BookGenre.GenreID: genreID,
		})
	}

	if _, err := database.Exec(context, tx, repository.db.Insert(schema.BookGenre.Table).Rows(rows...)); err != nil {
		return classifyWrite(err, book, "insert_book_genres")
	}
	return nil
}

// attachGenres loads the linked genres of books with a single query.
func (repository *SQLRepository) attachGenres(context context.Context, querier database.Querier, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[int64]*Book, len(books))
	ids := make([]int64, 0, len(books))
	for _, book := range books {
		book.GenreIDs = []int64{}
		book.Genres = []GenreRef{}
		byID[book.ID] = book
		ids = append(ids, book.ID)
	}

	type link struct {
		BookID  int64  `db:"book_id"`
		GenreID int64  `db:"genre_id"`
		Name    string `db:"name"`
	}

	bookID := goqu.T(schema.BookGenre.Table).Col(schema.BookGenre.BookID)
	genreName := goqu.T(schema.Genre.Table).Col(schema.Genre.Name)

	query := repository.db.From(schema.BookGenre.Table).
		Join(goqu.T(schema.Genre.Table), goqu.On(
			goqu.T(schema.Genre.Table).Col(schema.Genre.ID).Eq(goqu.T(schema.BookGenre.Table).Col(schema.BookGenre.GenreID)),
		)).
		Select(bookID, goqu.T(schema.BookGenre.Table).Col(schema.BookGenre.GenreID), genreName).
		Where(bookID.In(ids)).
		Order(bookID.Asc(), goqu.Func("LOWER", genreName).Asc())

	links := make([]link, 0)
	if err := database.Select(context, querier, &links, query); err != nil {
		return dberr.Wrap(err, "list_book_genres")
	}

	for _, l := range links {
		book := byID[l.BookID]
		book.GenreIDs = append(book.GenreIDs, l.GenreID)
		book.Genres = append(book.Genres, GenreRef{ID: l.GenreID, Name: l.Name})
	}
	return nil
}

// classifyWrite maps constraint failures raised by the write itself, which
// only happen when a concurrent transaction slipped past the pre-checks.
func classifyWrite(err error, book *Book, action string) error {
	switch {
	case dberr.IsUniqueViolation(err):
		return errISBNTaken(book.ISBN)
	case dberr.IsForeignKeyViolation(err):
		return apperr.NotFound("Referenced author, language or genre").WithCause(err)
	}
	return dberr.Wrap(err, action)
}

// record maps the writable columns of book.
func record(book *Book) goqu.Record {
	return goqu.Record{
		schema.Book.Title:      book.Title,
		schema.Book.AuthorID:   database.Nullable(book.AuthorID),
		schema.Book.LanguageID: database.Nullable(book.LanguageID),
		schema.Book.Summary:    book.Summary,
		schema.Book.ISBN:       book.ISBN,
	}
}
