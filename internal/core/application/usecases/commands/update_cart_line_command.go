package commands

import (
	"errors"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrUpdateCartLineCommandIsNotConstructed = errors.New(
	"UpdateCartLineCommand must be created via NewUpdateCartLineCommand constructor",
)

// UpdateCartLineCommand sets the quantity of one line in the user's cart.
type UpdateCartLineCommand struct {
	userID   kernel.UUID
	lineID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewUpdateCartLineCommand(userID, lineID kernel.UUID, quantity int) (UpdateCartLineCommand, error) {
	if err := errors.Join(
		userID.Validate(),
		lineID.Validate(),
		cart.ValidateQuantity(quantity),
	); err != nil {
		return UpdateCartLineCommand{}, err
	}

	return UpdateCartLineCommand{
		userID:   userID,
		lineID:   lineID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCartLineCommand) UserID() kernel.UUID { return c.userID }
func (c UpdateCartLineCommand) LineID() kernel.UUID { return c.lineID }
func (c UpdateCartLineCommand) Quantity() int       { return c.quantity }

func (c UpdateCartLineCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartLineCommandIsNotConstructed)
}
