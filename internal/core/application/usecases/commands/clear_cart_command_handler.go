package commands

import (
	"context"
	"errors"

	"shop/internal/pkg/errs"

	"go.uber.org/zap"
)

type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
	cache      CartViewInvalidator
	logger     *zap.Logger
}

func NewClearCartCommandHandler(
	uowFactory CartUoWFactory,
	cache CartViewInvalidator,
	logger *zap.Logger,
) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With(zap.String("component", "clear_cart")),
	}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, command ClearCartCommand) error {
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
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if c.IsEmpty() {
		return nil
	}

	c.Clear(utcNow())
	if err = cartRepo.Save(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	invalidateCartView(ctx, h.cache, h.logger, command.UserID())
	return nil
}
