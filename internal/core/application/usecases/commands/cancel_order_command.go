package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels a pending or paid order and returns its stock.
type CancelOrderCommand struct {
	orderCommand
}

func NewCancelOrderCommand(actor kernel.Actor, orderID kernel.UUID) (CancelOrderCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderCommand: base}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}
