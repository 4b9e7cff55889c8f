package commands

import (
	"context"

	"shop/internal/core/domain/model/cart"
	"shop/internal/pkg/errs"

	"go.uber.org/zap"
)

type UpdateCartLineCommandHandler struct {
	uowFactory CartUoWFactory
	cache      CartViewInvalidator
	logger     *zap.Logger
}

func NewUpdateCartLineCommandHandler(
	uowFactory CartUoWFactory,
	cache CartViewInvalidator,
	logger *zap.Logger,
) UpdateCartLineCommandHandler {
	return UpdateCartLineCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With(zap.String("component", "update_cart_line")),
	}
}

// Handle changes the line quantity. A line that is not in the user's cart is
// reported as errs.ErrObjectNotFound.
func (h UpdateCartLineCommandHandler) Handle(ctx context.Context, command UpdateCartLineCommand) (*cart.Line, error) {
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

	cartRepo := uow.CartRepository()

	c, err := cartRepo.GetByUserForUpdate(ctx, command.UserID())
	if err != nil {
		return nil, err
	}

	existing, ok := c.Line(command.LineID())
	if !ok {
		return nil, errs.NewObjectNotFoundError("lineID", command.LineID())
	}

	product, err := uow.ProductRepository().Get(ctx, existing.ProductID())
	if err != nil {
		return nil, err
	}

	line, err := c.UpdateQuantity(command.LineID(), product, command.Quantity(), utcNow())
	if err != nil {
		return nil, err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	invalidateCartView(ctx, h.cache, h.logger, command.UserID())
	return line, nil
}
