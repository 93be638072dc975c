package genre

import (
	"context"
	"log/slog"

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

func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.ListGenres(context)
}

func (service *Service) GetGenre(context context.Context, id int64) (*Genre, error) {
	return service.repo.GetGenre(context, id)
}

// CreateGenre stores a new genre. A name that differs from an existing one
// only by case is rejected with CONFLICT.
func (service *Service) CreateGenre(context context.Context, name string) (*Genre, error) {
	genre := &Genre{Name: NormalizeName(name)}
	if err := validateGenre(genre); err != nil {
		return nil, err
	}

	if err := service.repo.CreateGenre(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created", slog.Int64("genre_id", genre.ID), slog.String("name", genre.Name))
	return genre, nil
}

// RenameGenre applies the same uniqueness rule as CreateGenre. Changing only
// the casing of a genre's own name is allowed.
func (service *Service) RenameGenre(context context.Context, id int64, name string) (*Genre, error) {
	genre := &Genre{ID: id, Name: NormalizeName(name)}
	if err := validateGenre(genre); err != nil {
		return nil, err
	}

	if err := service.repo.RenameGenre(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_renamed", slog.Int64("genre_id", id), slog.String("name", genre.Name))
	return genre, nil
}

func (service *Service) DeleteGenre(context context.Context, id int64) error {
	if err := service.repo.DeleteGenre(context, id); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.Int64("genre_id", id))
	return nil
}

func validateGenre(genre *Genre) error {
	return (&validate.Validator{}).
		Required(FieldName, genre.Name).
		MaxLen(FieldName, genre.Name, MaxNameLength).
		Err()
}
