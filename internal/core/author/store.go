package author

import "context"

type Repository interface {
	// ListAuthors orders by (last_name, first_name, id).
	ListAuthors(context context.Context) ([]*Author, error)
	GetAuthor(context context.Context, id int64) (*Author, error)
	CreateAuthor(context context.Context, a *Author) error
	UpdateAuthor(context context.Context, a *Author) error

	// DeleteAuthor fails with a REFERENTIAL_CONSTRAINT error while any book
	// references the author.
	DeleteAuthor(context context.Context, id int64) error
}
