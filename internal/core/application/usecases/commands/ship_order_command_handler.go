package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/order"
)

type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewShipOrderCommandHandler(uowFactory OrderUoWFactory) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{uowFactory: uowFactory}
}

func (h ShipOrderCommandHandler) Handle(ctx context.Context, command ShipOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order, _ OrderUoW, now time.Time) error {
		return o.Ship(command.Actor(), now)
	})
}
