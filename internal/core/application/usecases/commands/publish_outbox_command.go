package commands

import (
	"errors"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrPublishOutboxCommandIsNotConstructed = errors.New(
	"PublishOutboxCommand must be created via NewPublishOutboxCommand constructor",
)

// PublishOutboxCommand relays up to batchSize pending outbox messages to the
// broker.
type PublishOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOutboxCommand(batchSize int) (PublishOutboxCommand, error) {
	if batchSize < 1 {
		return PublishOutboxCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return PublishOutboxCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PublishOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c PublishOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxCommandIsNotConstructed)
}
