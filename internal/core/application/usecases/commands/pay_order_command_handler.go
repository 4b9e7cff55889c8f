package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/order"
)

type PayOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewPayOrderCommandHandler(uowFactory OrderUoWFactory) PayOrderCommandHandler {
	return PayOrderCommandHandler{uowFactory: uowFactory}
}

// Handle records payment. No payment gateway is involved; the caller is
// trusted to have collected it.
func (h PayOrderCommandHandler) Handle(ctx context.Context, command PayOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order, _ OrderUoW, now time.Time) error {
		return o.Pay(command.Actor(), now)
	})
}
