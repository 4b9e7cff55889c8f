package commands

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var ErrRemoveCartLineCommandIsNotConstructed = errors.New(
	"RemoveCartLineCommand must be created via NewRemoveCartLineCommand constructor",
)

type RemoveCartLineCommand struct {
	userID kernel.UUID
	lineID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCartLineCommand(userID, lineID kernel.UUID) (RemoveCartLineCommand, error) {
	if err := errors.Join(userID.Validate(), lineID.Validate()); err != nil {
		return RemoveCartLineCommand{}, err
	}
	return RemoveCartLineCommand{userID: userID, lineID: lineID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveCartLineCommand) UserID() kernel.UUID { return c.userID }
func (c RemoveCartLineCommand) LineID() kernel.UUID { return c.lineID }

func (c RemoveCartLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartLineCommandIsNotConstructed)
}
