package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a command. Events are
// written to the outbox in the same transaction as the aggregate itself.
type DomainEvent interface {
	EventType() string
	AggregateType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is implemented by aggregates that record domain events.
type EventRecorder interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
