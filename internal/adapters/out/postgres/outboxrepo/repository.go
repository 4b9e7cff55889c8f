package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/ports"
	"shop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxAttempts is the number of failed deliveries after which a message is
// no longer fetched.
const MaxAttempts = 10

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append serializes each event as JSON and inserts it.
func (r *GormOutboxRepository) Append(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal %s event: %w", e.EventType(), err)
		}
		dtos = append(dtos, OutboxMessageDTO{
			AggregateType: e.AggregateType(),
			AggregateID:   e.AggregateID().String(),
			EventType:     e.EventType(),
			Payload:       string(payload),
			CreatedAt:     e.OccurredAt(),
		})
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending returns up to limit unpublished messages, oldest first, with
// their rows locked. Rows already locked by another relay are skipped.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL AND attempts < ?", MaxAttempts).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toPort(dto))
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	return r.mark(ctx, id, map[string]any{
		"published_at": at,
		"last_error":   nil,
	})
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	return r.mark(ctx, id, map[string]any{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": reason,
	})
}

func (r *GormOutboxRepository) mark(ctx context.Context, id int64, columns map[string]any) error {
	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).Where("id = ?", id).UpdateColumns(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id)
	}
	return nil
}
