package author

import (
	"context"
	"log/slog"
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

func (service *Service) ListAuthors(context context.Context) ([]*Author, error) {
	return service.repo.ListAuthors(context)
}

func (service *Service) GetAuthor(context context.Context, id int64) (*Author, error) {
	return service.repo.GetAuthor(context, id)
}

func (service *Service) CreateAuthor(context context.Context, author *Author) error {
	normalize(author)
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.CreateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_created", slog.Int64("author_id", author.ID), slog.String("name", author.DisplayName()))
	return nil
}

func (service *Service) UpdateAuthor(context context.Context, id int64, author *Author) error {
	author.ID = id
	normalize(author)
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.UpdateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.Int64("author_id", author.ID))
	return nil
}

func (service *Service) DeleteAuthor(context context.Context, id int64) error {
	if err := service.repo.DeleteAuthor(context, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.Int64("author_id", id))
	return nil
}

func normalize(author *Author) {
	author.FirstName = strings.TrimSpace(author.FirstName)
	author.LastName = strings.TrimSpace(author.LastName)
}

func validateAuthor(author *Author) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldFirstName, author.FirstName).MaxLen(FieldFirstName, author.FirstName, MaxNameLength).
		Required(FieldLastName, author.LastName).MaxLen(FieldLastName, author.LastName, MaxNameLength)

	if author.DateOfBirth != nil && author.DateOfDeath != nil {
		validator.Custom(FieldDateOfDeath, author.DateOfDeath.Before(*author.DateOfBirth), "Must not be before date_of_birth")
	}

	return validator.Err()
}
