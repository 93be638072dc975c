package instance

import "context"

// Feed receives committed status transitions. Publishing happens after the
// catalog transaction, so a feed failure never rolls back a status change.
type Feed interface {
	Publish(context context.Context, transition Transition) error

	// Recent returns up to limit transitions, newest first.
	Recent(context context.Context, limit int) ([]Transition, error)
}

// NoopFeed drops every transition. It backs deployments without Redis.
type NoopFeed struct{}

func (NoopFeed) Publish(context.Context, Transition) error { return nil }

func (NoopFeed) Recent(context.Context, int) ([]Transition, error) {
	return []Transition{}, nil
}
