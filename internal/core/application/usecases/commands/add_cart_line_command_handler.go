package commands

import (
	"context"

	"shop/internal/core/domain/model/cart"

	"go.uber.org/zap"
)

// AddCartLineCommandHandler adds or replaces a cart line under the cart row
// lock, so concurrent changes to one cart apply one after another.
type AddCartLineCommandHandler struct {
	uowFactory CartUoWFactory
	cache      CartViewInvalidator
	logger     *zap.Logger
}

func NewAddCartLineCommandHandler(
	uowFactory CartUoWFactory,
	cache CartViewInvalidator,
	logger *zap.Logger,
) AddCartLineCommandHandler {
	return AddCartLineCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With(zap.String("component", "add_cart_line")),
	}
}

// Handle returns the stored line. It fails with catalog.ErrProductNotActive
// or *catalog.InsufficientStockError when the product cannot cover the
// quantity right now; the stock itself is only reserved at checkout.
func (h AddCartLineCommandHandler) Handle(ctx context.Context, command AddCartLineCommand) (*cart.Line, error) {
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

	now := utcNow()
	cartRepo := uow.CartRepository()

	if _, err := cartRepo.Ensure(ctx, command.UserID(), now); err != nil {
		return nil, err
	}

	c, err := cartRepo.GetByUserForUpdate(ctx, command.UserID())
	if err != nil {
		return nil, err
	}

	product, err := uow.ProductRepository().Get(ctx, command.ProductID())
	if err != nil {
		return nil, err
	}

	line, err := c.AddOrReplaceLine(product, command.Quantity(), now)
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
