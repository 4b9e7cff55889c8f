package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/order"
)

type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetOrderStatusCommandHandler(uowFactory OrderUoWFactory) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, command SetOrderStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order, _ OrderUoW, now time.Time) error {
		return o.OverrideStatus(command.Status(), command.Actor(), now)
	})
}
