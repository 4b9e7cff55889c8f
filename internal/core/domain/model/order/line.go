package order

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via Order.AddLine or RestoreLine")

// Line is a purchased (product, quantity, unit price) entry. Only its
// prepared quantity changes after the order is placed.
type Line struct {
	id               kernel.UUID
	productID        kernel.UUID
	quantity         int
	unitPrice        kernel.Money
	preparedQuantity int

	isConstructed bool
}

// RestoreLine rebuilds a line from storage.
func RestoreLine(id, productID kernel.UUID, quantity int, unitPrice kernel.Money, preparedQuantity int) (*Line, error) {
	l := &Line{unitPrice: unitPrice, isConstructed: true}
	if err := errors.Join(
		validateID(id),
		validateID(productID),
		l.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	l.id = id
	l.productID = productID

	if preparedQuantity < 0 || preparedQuantity > quantity {
		return nil, errs.NewValueIsOutOfRangeError("preparedQuantity", preparedQuantity, 0, quantity)
	}
	l.preparedQuantity = preparedQuantity
	return l, nil
}

func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() kernel.UUID         { return l.id }
func (l *Line) ProductID() kernel.UUID  { return l.productID }
func (l *Line) Quantity() int           { return l.quantity }
func (l *Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l *Line) PreparedQuantity() int   { return l.preparedQuantity }

// Subtotal is quantity × unit price.
func (l *Line) Subtotal() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}

// IsFullyPrepared reports whether every purchased unit has been picked.
func (l *Line) IsFullyPrepared() bool {
	return l.preparedQuantity == l.quantity
}

// prepare clamps prepared into [0, quantity].
func (l *Line) prepare(prepared int) {
	l.preparedQuantity = min(max(prepared, 0), l.quantity)
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	l.quantity = quantity
	return nil
}

func validateID(id kernel.UUID) error {
	return id.Validate()
}
