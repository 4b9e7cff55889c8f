package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrClearCartCommandIsNotConstructed = errors.New(
	"ClearCartCommand must be created via NewClearCartCommand constructor",
)

// ClearCartCommand removes every line from the user's cart. Clearing an
// empty or missing cart succeeds.
type ClearCartCommand struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearCartCommand(userID kernel.UUID) (ClearCartCommand, error) {
	if err := userID.Validate(); err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) UserID() kernel.UUID { return c.userID }

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}
