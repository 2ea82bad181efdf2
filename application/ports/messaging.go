package ports

import (
	"context"

	"catalog-backend/domain/events"
)

// EventBus publishes domain events to the external bus. Publication is
// fire-and-forget from the caller's perspective: the bus's own durability
// (and, for queued events, the queue's redelivery policy) is the only retry.
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}
