package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand lets staff put an order into any status, bypassing
// the transition guards. Stock is not adjusted.
type SetOrderStatusCommand struct {
	orderCommand
	status order.Status
}

func NewSetOrderStatusCommand(actor kernel.Actor, orderID kernel.UUID, status order.Status) (SetOrderStatusCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return SetOrderStatusCommand{}, err
	}
	if err = status.Validate(); err != nil {
		return SetOrderStatusCommand{}, err
	}
	return SetOrderStatusCommand{orderCommand: base, status: status}, nil
}

func (c SetOrderStatusCommand) Status() order.Status { return c.status }

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}
