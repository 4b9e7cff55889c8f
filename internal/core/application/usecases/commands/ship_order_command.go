package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand marks a paid, prepared or ready_to_ship order as shipped. Staff only.
type ShipOrderCommand struct {
	orderCommand
}

func NewShipOrderCommand(actor kernel.Actor, orderID kernel.UUID) (ShipOrderCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return ShipOrderCommand{}, err
	}
	return ShipOrderCommand{orderCommand: base}, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}
