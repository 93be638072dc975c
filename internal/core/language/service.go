package language

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

func (service *Service) ListLanguages(context context.Context) ([]*Language, error) {
	return service.repo.ListLanguages(context)
}

func (service *Service) GetLanguage(context context.Context, id int64) (*Language, error) {
	return service.repo.GetLanguage(context, id)
}

func (service *Service) CreateLanguage(context context.Context, name string) (*Language, error) {
	language := &Language{Name: strings.TrimSpace(name)}
	if err := validateLanguage(language); err != nil {
		return nil, err
	}

	if err := service.repo.CreateLanguage(context, language); err != nil {
		return nil, err
	}

	service.logger.Info("language_created", slog.Int64("language_id", language.ID), slog.String("name", language.Name))
	return language, nil
}

func (service *Service) RenameLanguage(context context.Context, id int64, name string) (*Language, error) {
	language := &Language{ID: id, Name: strings.TrimSpace(name)}
	if err := validateLanguage(language); err != nil {
		return nil, err
	}

	if err := service.repo.RenameLanguage(context, language); err != nil {
		return nil, err
	}

	service.logger.Info("language_renamed", slog.Int64("language_id", id))
	return language, nil
}

func (service *Service) DeleteLanguage(context context.Context, id int64) error {
	if err := service.repo.DeleteLanguage(context, id); err != nil {
		return err
	}

	service.logger.Warn("language_deleted", slog.Int64("language_id", id))
	return nil
}

func validateLanguage(language *Language) error {
	return (&validate.Validator{}).
		Required(FieldName, language.Name).
		MaxLen(FieldName, language.Name, MaxNameLength).
		Err()
}
