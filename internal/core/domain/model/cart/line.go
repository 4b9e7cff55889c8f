package cart

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via its constructor")

// Line is one (product, quantity) entry of a cart. Its subtotal is computed by
// the read side from the product's current price and never stored.
type Line struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	addedAt   time.Time

	guard guard.ConstructorGuard
}

func newLine(productID kernel.UUID, quantity int, now time.Time) (*Line, error) {
	return RestoreLine(kernel.NewUUID(), productID, quantity, now)
}

// RestoreLine rebuilds a line from storage.
func RestoreLine(id, productID kernel.UUID, quantity int, addedAt time.Time) (*Line, error) {
	l := &Line{addedAt: addedAt, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		setID(&l.id, id),
		setID(&l.productID, productID),
		l.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID        { return l.id }
func (l *Line) ProductID() kernel.UUID { return l.productID }
func (l *Line) Quantity() int          { return l.quantity }
func (l *Line) AddedAt() time.Time     { return l.addedAt }

func (l *Line) setQuantity(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	l.quantity = quantity
	return nil
}

// ValidateQuantity rejects quantities below one.
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	return nil
}

func setID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}
