package outbox

import (
	"context"
)

type OutboxRepository interface {
	Create(ctx context.Context, event Event) error
	// ListPending returns up to limit events due for delivery, oldest first.
	ListPending(ctx context.Context, limit int) ([]Event, error)
	MarkSent(ctx context.Context, id string) error
	// MarkFailed records the error and schedules the next attempt.
	MarkFailed(ctx context.Context, id string, cause string) error
}

// Publisher delivers a relayed event to the broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
