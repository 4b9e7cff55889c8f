package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/order"
)

type MarkReadyToShipCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewMarkReadyToShipCommandHandler(uowFactory OrderUoWFactory) MarkReadyToShipCommandHandler {
	return MarkReadyToShipCommandHandler{uowFactory: uowFactory}
}

func (h MarkReadyToShipCommandHandler) Handle(ctx context.Context, command MarkReadyToShipCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order, _ OrderUoW, now time.Time) error {
		return o.MarkReadyToShip(command.Actor(), now)
	})
}
