package book

import "context"

type Repository interface {
	// ListBooks orders by (title, id) and attaches genres.
	ListBooks(context context.Context, filter Filter) ([]*Book, error)
	GetBook(context context.Context, id int64) (*Book, error)

	// CreateBook and UpdateBook write the book row and its genre links in one
	// transaction. They fail with NOT_FOUND for an unknown author, language
	// or genre and with CONFLICT when the ISBN belongs to another book.
	CreateBook(context context.Context, book *Book) error
	UpdateBook(context context.Context, book *Book) error

	// DeleteBook fails with a REFERENTIAL_CONSTRAINT error while copies exist.
	DeleteBook(context context.Context, id int64) error
}
