package commands

import (
	"context"

	"go.uber.org/zap"
)

type RemoveCartLineCommandHandler struct {
	uowFactory CartUoWFactory
	cache      CartViewInvalidator
	logger     *zap.Logger
}

func NewRemoveCartLineCommandHandler(
	uowFactory CartUoWFactory,
	cache CartViewInvalidator,
	logger *zap.Logger,
) RemoveCartLineCommandHandler {
	return RemoveCartLineCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With(zap.String("component", "remove_cart_line")),
	}
}

func (h RemoveCartLineCommandHandler) Handle(ctx context.Context, command RemoveCartLineCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	c, err := cartRepo.GetByUserForUpdate(ctx, command.UserID())
	if err != nil {
		return err
	}

	if err = c.RemoveLine(command.LineID(), utcNow()); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	invalidateCartView(ctx, h.cache, h.logger, command.UserID())
	return nil
}
