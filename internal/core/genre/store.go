package genre

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListGenres(context context.Context) ([]*Genre, error)
	GetGenre(context context.Context, id int64) (*Genre, error)

	// CreateGenre and RenameGenre fail with CONFLICT when another genre
	// already has the same name under case folding.
	CreateGenre(context context.Context, genre *Genre) error
	RenameGenre(context context.Context, genre *Genre) error

	// DeleteGenre removes the genre and every book link to it.
	DeleteGenre(context context.Context, id int64) error
}
