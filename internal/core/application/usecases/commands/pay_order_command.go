package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand moves a pending order to paid. The order's owner or staff may pay.
type PayOrderCommand struct {
	orderCommand
}

func NewPayOrderCommand(actor kernel.Actor, orderID kernel.UUID) (PayOrderCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return PayOrderCommand{}, err
	}
	return PayOrderCommand{orderCommand: base}, nil
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}
