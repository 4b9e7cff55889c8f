package commands

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/guard"
)

// orderCommand carries what every fulfillment command needs: who acts and on
// which order.
type orderCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func newOrderCommand(actor kernel.Actor, orderID kernel.UUID) (orderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return orderCommand{}, err
	}
	return orderCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c orderCommand) Actor() kernel.Actor  { return c.actor }
func (c orderCommand) OrderID() kernel.UUID { return c.orderID }

// transitionOrder loads the order with its row locked, applies change and
// writes the result with a version check, all in one transaction.
func transitionOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	change func(o *order.Order, uow OrderUoW, now time.Time) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = change(o, uow, utcNow()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
