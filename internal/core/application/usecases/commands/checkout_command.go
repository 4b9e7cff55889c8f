package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns the actor's cart into a pending order.
type CheckoutCommand struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(actor kernel.Actor) (CheckoutCommand, error) {
	if err := actor.Validate(); err != nil {
		return CheckoutCommand{}, err
	}
	return CheckoutCommand{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c CheckoutCommand) Actor() kernel.Actor { return c.actor }

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}
