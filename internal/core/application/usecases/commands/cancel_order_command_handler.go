package commands

import (
	"context"
	"slices"
	"time"

	"shop/internal/core/domain/model/order"
)

type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle cancels the order and releases every line's quantity back to stock
// in the same transaction. Lines are released in product id order, the same
// order checkout reserves in.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order, uow OrderUoW, now time.Time) error {
		if err := o.Cancel(command.Actor(), now); err != nil {
			return err
		}

		lines := o.Lines()
		slices.SortFunc(lines, func(a, b *order.Line) int {
			return a.ProductID().Compare(b.ProductID())
		})

		ledger := uow.InventoryLedger()
		for _, l := range lines {
			if err := ledger.Release(ctx, l.ProductID(), l.Quantity()); err != nil {
				return err
			}
		}
		return nil
	})
}
