package stats

import "context"

// Repository counts catalog rows. Nothing is cached.
type Repository interface {
	CountBooks(context context.Context) (int, error)
	CountInstances(context context.Context) (int, error)
	CountAvailableInstances(context context.Context) (int, error)
	CountAuthors(context context.Context) (int, error)
	CountGenres(context context.Context) (int, error)

	// CountBooksMatchingTitle counts titles containing substring. The
	// substring is matched literally.
	CountBooksMatchingTitle(context context.Context, substring string, caseInsensitive bool) (int, error)
}
