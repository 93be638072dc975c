package instance

import "context"

type Repository interface {
	// ListInstances orders by due_back ascending with undated copies last, then id.
	ListInstances(context context.Context, filter Filter) ([]*Instance, error)
	GetInstance(context context.Context, id string) (*Instance, error)

	// CreateInstance fails with NOT_FOUND when the book is unknown.
	CreateInstance(context context.Context, instance *Instance) error

	// SetStatus is the only write path for status and due_back. It returns
	// the stored copy and the status it held before the change.
	SetStatus(context context.Context, change StatusChange) (*Instance, Status, error)

	DeleteInstance(context context.Context, id string) error
}
