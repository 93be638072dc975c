package book

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/locallibrary/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListBooks(context context.Context, filter Filter) ([]*Book, error) {
	return service.repo.ListBooks(context, filter)
}

func (service *Service) ListBooksByAuthor(context context.Context, authorID int64) ([]*Book, error) {
	return service.repo.ListBooks(context, Filter{AuthorID: &authorID})
}

func (service *Service) ListBooksByGenre(context context.Context, genreID int64) ([]*Book, error) {
	return service.repo.ListBooks(context, Filter{GenreID: &genreID})
}

func (service *Service) GetBook(context context.Context, id int64) (*Book, error) {
	return service.repo.GetBook(context, id)
}

// CreateBook stores the book and its genre links, then returns the stored
// form with genre names attached.
func (service *Service) CreateBook(context context.Context, book *Book) (*Book, error) {
	normalize(book)
	if err := validateBook(book); err != nil {
		return nil, err
	}

	if err := service.repo.CreateBook(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.Int64("book_id", book.ID),
		slog.String("isbn", book.ISBN),
		slog.Int("genres", len(book.GenreIDs)),
	)
	return service.repo.GetBook(context, book.ID)
}

// UpdateBook replaces every writable field, genre links included.
func (service *Service) UpdateBook(context context.Context, id int64, book *Book) (*Book, error) {
	book.ID = id
	normalize(book)
	if err := validateBook(book); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateBook(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_updated", slog.Int64("book_id", id))
	return service.repo.GetBook(context, id)
}

func (service *Service) DeleteBook(context context.Context, id int64) error {
	if err := service.repo.DeleteBook(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.Int64("book_id", id))
	return nil
}

// normalize trims text fields and reduces GenreIDs to a sorted set.
func normalize(book *Book) {
	book.Title = strings.TrimSpace(book.Title)
	book.Summary = strings.TrimSpace(book.Summary)
	book.ISBN = strings.TrimSpace(book.ISBN)

	ids := slices.Clone(book.GenreIDs)
	slices.Sort(ids)
	book.GenreIDs = slices.Compact(ids)
	if book.GenreIDs == nil {
		book.GenreIDs = []int64{}
	}
}

func validateBook(book *Book) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, MaxTitleLength).
		ExactLen(FieldISBN, book.ISBN, ISBNLength).
		MaxLen(FieldSummary, book.Summary, MaxSummaryLength)

	validator.Custom(FieldAuthorID, book.AuthorID != nil && *book.AuthorID <= 0, "Must be a positive integer")
	validator.Custom(FieldLanguageID, book.LanguageID != nil && *book.LanguageID <= 0, "Must be a positive integer")

	for _, id := range book.GenreIDs {
		if id <= 0 {
			validator.Custom(FieldGenreIDs, true, "Must contain positive integers only")
			break
		}
	}

	return validator.Err()
}
