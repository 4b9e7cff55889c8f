package commands

import (
	"context"

	"shop/internal/core/ports"

	"go.uber.org/zap"
)

type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
	logger     *zap.Logger
}

func NewPublishOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.MessagePublisher,
	logger *zap.Logger,
) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle locks a batch of pending messages, publishes them one by one and
// records each outcome. Delivery is at least once: a message published just
// before a failed commit is sent again by the next run. A publish failure
// only bumps the message's attempt counter; the rest of the batch still goes
// out. Returns the number of messages published.
func (h PublishOutboxCommandHandler) Handle(ctx context.Context, command PublishOutboxCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()

	messages, err := outbox.FetchPending(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	published := 0
	for _, m := range messages {
		if pubErr := h.publisher.Publish(ctx, m); pubErr != nil {
			h.logger.Warn("outbox message not published",
				zap.Int64("message_id", m.ID),
				zap.String("event_type", m.EventType),
				zap.Int("attempts", m.Attempts+1),
				zap.Error(pubErr),
			)
			if err = outbox.MarkFailed(ctx, m.ID, pubErr.Error()); err != nil {
				return 0, err
			}
			continue
		}

		if err = outbox.MarkPublished(ctx, m.ID, utcNow()); err != nil {
			return 0, err
		}
		published++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return published, nil
}
