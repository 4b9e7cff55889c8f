package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/order"
)

type RecordPreparationCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRecordPreparationCommandHandler(uowFactory OrderUoWFactory) RecordPreparationCommandHandler {
	return RecordPreparationCommandHandler{uowFactory: uowFactory}
}

// Handle merges the picking progress. Once every line is fully prepared the
// order becomes prepared.
func (h RecordPreparationCommandHandler) Handle(ctx context.Context, command RecordPreparationCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	return transitionOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order, _ OrderUoW, now time.Time) error {
		return o.RecordPreparation(command.Updates(), command.Actor(), now)
	})
}
