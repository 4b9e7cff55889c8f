package commands

import (
	"context"
	"errors"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/services"
	"shop/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("shop/internal/core/application/usecases/commands")

// CheckoutCommandHandler converts a cart into an order in one transaction.
//
// The cart row is locked first, so a second checkout of the same cart waits
// and then finds it empty. Stock is reserved product by product in ascending
// product id order; two checkouts sharing products therefore lock rows in the
// same sequence. Any failure rolls back every reservation and leaves the cart
// untouched.
//
// Example:
//
//	handler := NewCheckoutCommandHandler(uowFactory, cartCache, logger)
//	cmd, _ := NewCheckoutCommand(actor)
//	o, err := handler.Handle(ctx, cmd)
//	var stockErr *catalog.InsufficientStockError
//	switch {
//	case errors.Is(err, cart.ErrCartIsEmpty):
//	    // nothing to buy
//	case errors.As(err, &stockErr):
//	    // stockErr.ProductName is short
//	}
type CheckoutCommandHandler struct {
	uowFactory UoWFactory
	planner    services.CheckoutPlanner
	cache      CartViewInvalidator
	logger     *zap.Logger
}

func NewCheckoutCommandHandler(uowFactory UoWFactory, cache CartViewInvalidator, logger *zap.Logger) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewCheckoutPlanner(),
		cache:      cache,
		logger:     logger.With(zap.String("component", "checkout")),
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, command CheckoutCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	actor := command.Actor()
	ctx, span := tracer.Start(ctx, "checkout")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", actor.UserID.String()))

	o, err := h.checkout(ctx, actor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", o.ID().String()),
		attribute.String("order.total", o.Total().String()),
	)
	invalidateCartView(ctx, h.cache, h.logger, actor.UserID)

	h.logger.Info("order placed",
		zap.String("order_id", o.ID().String()),
		zap.String("user_id", actor.UserID.String()),
		zap.String("total", o.Total().String()),
		zap.Int("lines", len(o.Lines())),
	)
	return o, nil
}

func (h CheckoutCommandHandler) checkout(ctx context.Context, actor kernel.Actor) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	c, err := cartRepo.GetByUserForUpdate(ctx, actor.UserID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, cart.ErrCartIsEmpty
	}
	if err != nil {
		return nil, err
	}

	plan, err := h.planner.Plan(c)
	if err != nil {
		return nil, err
	}

	ledger := uow.InventoryLedger()
	reserved := make([]*catalog.Product, 0, len(plan))
	for _, r := range plan {
		product, reserveErr := ledger.Reserve(ctx, r.ProductID, r.Quantity)
		if reserveErr != nil {
			return nil, reserveErr
		}
		reserved = append(reserved, product)
	}

	now := utcNow()
	customer := order.Customer{ID: actor.UserID, Name: actor.Name}
	o, err := h.planner.BuildOrder(kernel.NewUUID(), customer, plan, reserved, now)
	if err != nil {
		return nil, err
	}

	c.Clear(now)
	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
