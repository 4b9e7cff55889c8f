package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"
)

var ErrRecordPreparationCommandIsNotConstructed = errors.New(
	"RecordPreparationCommand must be created via NewRecordPreparationCommand constructor",
)

// RecordPreparationCommand reports how many units of each line staff have
// picked. Quantities are clamped to the line quantity by the order; unknown
// line ids are ignored.
type RecordPreparationCommand struct {
	orderCommand
	updates []order.PreparationUpdate
}

func NewRecordPreparationCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	updates []order.PreparationUpdate,
) (RecordPreparationCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return RecordPreparationCommand{}, err
	}
	if len(updates) == 0 {
		return RecordPreparationCommand{}, errs.NewValueIsRequiredError("lines")
	}
	for _, u := range updates {
		if err = u.LineID.Validate(); err != nil {
			return RecordPreparationCommand{}, err
		}
	}

	return RecordPreparationCommand{
		orderCommand: base,
		updates:      append([]order.PreparationUpdate(nil), updates...),
	}, nil
}

func (c RecordPreparationCommand) Updates() []order.PreparationUpdate {
	return append([]order.PreparationUpdate(nil), c.updates...)
}

func (c RecordPreparationCommand) Validate() error {
	return c.guard.Validate(ErrRecordPreparationCommandIsNotConstructed)
}
