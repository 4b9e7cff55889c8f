package commands

import (
	"errors"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrAddCartLineCommandIsNotConstructed = errors.New(
	"AddCartLineCommand must be created via NewAddCartLineCommand constructor",
)

// AddCartLineCommand puts a product into the user's cart. If the product is
// already in the cart its quantity is replaced, not incremented.
//
// Example:
//
//	cmd, err := NewAddCartLineCommand(actor.UserID, productID, 2)
//	if err != nil {
//	    return err // quantity below one
//	}
//	line, err := handler.Handle(ctx, cmd)
type AddCartLineCommand struct {
	userID    kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewAddCartLineCommand(userID, productID kernel.UUID, quantity int) (AddCartLineCommand, error) {
	if err := errors.Join(
		userID.Validate(),
		productID.Validate(),
		cart.ValidateQuantity(quantity),
	); err != nil {
		return AddCartLineCommand{}, err
	}

	return AddCartLineCommand{
		userID:    userID,
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddCartLineCommand) UserID() kernel.UUID    { return c.userID }
func (c AddCartLineCommand) ProductID() kernel.UUID { return c.productID }
func (c AddCartLineCommand) Quantity() int          { return c.quantity }

func (c AddCartLineCommand) Validate() error {
	return c.guard.Validate(ErrAddCartLineCommandIsNotConstructed)
}
