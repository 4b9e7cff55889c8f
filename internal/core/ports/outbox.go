package ports

import (
	"context"
	"time"

	"shop/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be published.
type OutboxMessage struct {
	ID            int64
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	Attempts      int
	CreatedAt     time.Time
}

// OutboxRepository stores domain events in the same transaction as the
// aggregates that produced them.
type OutboxRepository interface {
	// Append serializes events into the outbox.
	Append(ctx context.Context, events ...kernel.DomainEvent) error

	// FetchPending locks up to limit unpublished messages whose attempts are
	// below the retry limit, oldest first. Rows locked by another relay are
	// skipped.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, id int64, at time.Time) error
	MarkFailed(ctx context.Context, id int64, reason string) error
}

// MessagePublisher delivers outbox messages to the message broker.
type MessagePublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
