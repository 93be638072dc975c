package stats

import (
	"context"
	"strings"
)

type countFunc func(context.Context) (int, error)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) CountBooks(context context.Context) (int, error) {
	return service.repo.CountBooks(context)
}

func (service *Service) CountInstances(context context.Context) (int, error) {
	return service.repo.CountInstances(context)
}

func (service *Service) CountAvailableInstances(context context.Context) (int, error) {
	return service.repo.CountAvailableInstances(context)
}

func (service *Service) CountAuthors(context context.Context) (int, error) {
	return service.repo.CountAuthors(context)
}

func (service *Service) CountGenres(context context.Context) (int, error) {
	return service.repo.CountGenres(context)
}

func (service *Service) CountBooksMatchingTitle(context context.Context, substring string, caseInsensitive bool) (int, error) {
	return service.repo.CountBooksMatchingTitle(context, substring, caseInsensitive)
}

// Summary gathers every dashboard count. A blank titleFilter falls back to
// [DefaultTitleFilter]; the title match is case insensitive.
func (service *Service) Summary(context context.Context, titleFilter string) (*Summary, error) {
	titleFilter = strings.TrimSpace(titleFilter)
	if titleFilter == "" {
		titleFilter = DefaultTitleFilter
	}

	summary := &Summary{TitleFilter: titleFilter}

	counters := []struct {
		target *int
		count  countFunc
	}{
		{&summary.NumBooks, service.repo.CountBooks},
		{&summary.NumInstances, service.repo.CountInstances},
		{&summary.NumInstancesAvailable, service.repo.CountAvailableInstances},
		{&summary.NumAuthors, service.repo.CountAuthors},
		{&summary.NumGenres, service.repo.CountGenres},
	}

	for _, counter := range counters {
		total, err := counter.count(context)
		if err != nil {
			return nil, err
		}
		*counter.target = total
	}

	matching, err := service.repo.CountBooksMatchingTitle(context, titleFilter, true)
	if err != nil {
		return nil, err
	}
	summary.NumBooksMatchingTitle = matching

	return summary, nil
}
