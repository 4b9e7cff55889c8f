package commands

import (
	"context"

	"shop/internal/core/domain/model/cart"
)

type EnsureCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewEnsureCartCommandHandler(uowFactory CartUoWFactory) EnsureCartCommandHandler {
	return EnsureCartCommandHandler{uowFactory: uowFactory}
}

// Handle returns the user's cart, creating it on first use.
func (h EnsureCartCommandHandler) Handle(ctx context.Context, command EnsureCartCommand) (*cart.Cart, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().Ensure(ctx, command.UserID(), utcNow())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
