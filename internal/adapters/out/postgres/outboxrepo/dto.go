// Package outboxrepo stores domain events in the outbox_messages table so
// they commit or roll back together with the aggregates that recorded them.
package outboxrepo

import (
	"database/sql"
	"time"

	"shop/internal/core/ports"
)

type OutboxMessageDTO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	AggregateType string `gorm:"not null"`
	AggregateID   string `gorm:"not null"`
	EventType     string `gorm:"not null"`
	// lib/pq sends []byte as bytea, which jsonb rejects; text converts.
	Payload     string `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time
	PublishedAt sql.NullTime
	Attempts    int
	LastError   sql.NullString
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func toPort(dto OutboxMessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:            dto.ID,
		AggregateType: dto.AggregateType,
		AggregateID:   dto.AggregateID,
		EventType:     dto.EventType,
		Payload:       []byte(dto.Payload),
		Attempts:      dto.Attempts,
		CreatedAt:     dto.CreatedAt,
	}
}
