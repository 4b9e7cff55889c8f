package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrEnsureCartCommandIsNotConstructed = errors.New(
	"EnsureCartCommand must be created via NewEnsureCartCommand constructor",
)

// EnsureCartCommand creates the user's cart if it does not exist yet.
// Repeating it is harmless.
type EnsureCartCommand struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewEnsureCartCommand(userID kernel.UUID) (EnsureCartCommand, error) {
	if err := userID.Validate(); err != nil {
		return EnsureCartCommand{}, err
	}
	return EnsureCartCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c EnsureCartCommand) UserID() kernel.UUID { return c.userID }

func (c EnsureCartCommand) Validate() error {
	return c.guard.Validate(ErrEnsureCartCommandIsNotConstructed)
}
