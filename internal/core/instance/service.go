package instance

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

type Service struct {
	repo   Repository
	feed   Feed
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the ledger. A nil feed disables the activity stream.
func NewService(repo Repository, feed Feed, logger *slog.Logger) *Service {
	if feed == nil {
		feed = NoopFeed{}
	}
	return &Service{
		repo:   repo,
		feed:   feed,
		logger: logger,
		now:    time.Now,
	}
}

// # Reads

func (service *Service) ListInstances(context context.Context, filter Filter) ([]*Instance, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, statusError(*filter.Status)
	}
	return service.repo.ListInstances(context, filter)
}

func (service *Service) ListInstancesByBook(context context.Context, bookID int64) ([]*Instance, error) {
	return service.repo.ListInstances(context, Filter{BookID: &bookID})
}

// ListOverdue returns on-loan copies whose due date is before today.
func (service *Service) ListOverdue(context context.Context, today date.Date) ([]*Instance, error) {
	onLoan := StatusOnLoan
	instances, err := service.repo.ListInstances(context, Filter{Status: &onLoan})
	if err != nil {
		return nil, err
	}

	overdue := make([]*Instance, 0, len(instances))
	for _, instance := range instances {
		if instance.IsOverdue(today) {
			overdue = append(overdue, instance)
		}
	}
	return overdue, nil
}

func (service *Service) GetInstance(context context.Context, id string) (*Instance, error) {
	if !uuid.IsValid(id) {
		return nil, errNotFound
	}
	return service.repo.GetInstance(context, id)
}

// RecentActivity reads the lending feed, newest first.
func (service *Service) RecentActivity(context context.Context, limit int) ([]Transition, error) {
	if limit <= 0 {
		limit = constants.FeedDefaultLimit
	}
	limit = min(limit, constants.FeedMaxLimit)
	return service.feed.Recent(context, limit)
}

// # Writes

// CreateInstance registers a new copy of bookID. Copies start in
// maintenance with no due date.
func (service *Service) CreateInstance(context context.Context, bookID *int64, imprint string) (*Instance, error) {
	instance := &Instance{
		ID:      uuid.New(),
		BookID:  bookID,
		Imprint: strings.TrimSpace(imprint),
		Status:  StatusMaintenance,
	}

	validator := &validate.Validator{}
	validator.
		Custom(FieldBookID, bookID == nil, "This field is required").
		Custom(FieldBookID, bookID != nil && *bookID <= 0, "Must be a positive integer").
		Required(FieldImprint, instance.Imprint).
		MaxLen(FieldImprint, instance.Imprint, MaxImprintLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.CreateInstance(context, instance); err != nil {
		return nil, err
	}

	service.logger.Info("instance_created",
		slog.String("instance_id", instance.ID),
		slog.Int64("book_id", *bookID),
	)
	return instance, nil
}

func (service *Service) DeleteInstance(context context.Context, id string) error {
	if !uuid.IsValid(id) {
		return errNotFound
	}

	if err := service.repo.DeleteInstance(context, id); err != nil {
		return err
	}

	service.logger.Warn("instance_deleted", slog.String("instance_id", id))
	return nil
}

// SetStatus moves a copy to status. on_loan needs a due date; available and
// maintenance refuse one; reserved stores whatever is given.
func (service *Service) SetStatus(context context.Context, id string, status Status, dueBack *date.Date) (*Instance, error) {
	if !status.IsValid() {
		return nil, statusError(status)
	}

	switch {
	case status == StatusOnLoan && dueBack == nil:
		return nil, validate.RequiredError(FieldDueBack, "Required when status is on_loan")
	case status.ClearsDueBack() && dueBack != nil:
		return nil, validate.RequiredError(FieldDueBack, "Must be empty when status is "+string(status))
	}

	return service.apply(context, StatusChange{InstanceID: id, Status: status, DueBack: dueBack})
}

// CheckOut lends the copy until due.
func (service *Service) CheckOut(context context.Context, id string, due date.Date) (*Instance, error) {
	if due.IsZero() {
		return nil, validate.RequiredError(FieldDueBack, "This field is required")
	}
	return service.SetStatus(context, id, StatusOnLoan, &due)
}

// Return makes the copy available and clears its due date.
func (service *Service) Return(context context.Context, id string) (*Instance, error) {
	return service.SetStatus(context, id, StatusAvailable, nil)
}

// Reserve holds the copy and keeps whatever due date it already has.
func (service *Service) Reserve(context context.Context, id string) (*Instance, error) {
	return service.apply(context, StatusChange{InstanceID: id, Status: StatusReserved, RetainDueBack: true})
}

// SendToMaintenance takes the copy out of circulation and clears its due date.
func (service *Service) SendToMaintenance(context context.Context, id string) (*Instance, error) {
	return service.SetStatus(context, id, StatusMaintenance, nil)
}

// apply writes change and publishes the transition once it has committed.
func (service *Service) apply(context context.Context, change StatusChange) (*Instance, error) {
	if !uuid.IsValid(change.InstanceID) {
		return nil, errNotFound
	}

	instance, previous, err := service.repo.SetStatus(context, change)
	if err != nil {
		return nil, err
	}

	transition := Transition{
		InstanceID: instance.ID,
		BookID:     instance.BookID,
		From:       previous,
		To:         instance.Status,
		DueBack:    instance.DueBack,
		At:         service.now().UTC(),
	}

	service.logger.Info("instance_status_changed",
		slog.String("instance_id", instance.ID),
		slog.String("from", string(previous)),
		slog.String("to", string(instance.Status)),
	)

	if err := service.feed.Publish(context, transition); err != nil {
		service.logger.Warn("instance_feed_publish_failed",
			slog.String("instance_id", instance.ID),
			slog.Any("error", err),
		)
	}
	return instance, nil
}

func statusError(status Status) error {
	allowed := make([]string, 0, len(Statuses()))
	for _, candidate := range Statuses() {
		allowed = append(allowed, string(candidate))
	}
	return (&validate.Validator{}).OneOf(FieldStatus, string(status), allowed...).Err()
}
