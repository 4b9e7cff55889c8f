package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
)

var ErrMarkReadyToShipCommandIsNotConstructed = errors.New(
	"MarkReadyToShipCommand must be created via NewMarkReadyToShipCommand constructor",
)

// MarkReadyToShipCommand moves a prepared order to ready_to_ship. Staff only.
type MarkReadyToShipCommand struct {
	orderCommand
}

func NewMarkReadyToShipCommand(actor kernel.Actor, orderID kernel.UUID) (MarkReadyToShipCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return MarkReadyToShipCommand{}, err
	}
	return MarkReadyToShipCommand{orderCommand: base}, nil
}

func (c MarkReadyToShipCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyToShipCommandIsNotConstructed)
}
