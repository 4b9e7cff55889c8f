package cmd

import (
	"shop/internal/adapters/in/http"
	"shop/internal/adapters/out/postgres"
	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot builds every use case handler over one GORM pool. The
// cart cache and the message publisher are optional.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cartCache  queries.CartViewCache
	publisher  ports.MessagePublisher
	logger     *zap.Logger
}

// NewCompositionRoot wires the handlers. cartCache may be nil to disable the
// cart view cache; it must then be an untyped nil.
func NewCompositionRoot(
	gormDB *gorm.DB,
	cartCache queries.CartViewCache,
	publisher ports.MessagePublisher,
	logger *zap.Logger,
) *CompositionRoot {
	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		cartCache:  cartCache,
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invalidator() commands.CartViewInvalidator {
	if c.cartCache == nil {
		return nil
	}
	return c.cartCache
}

func (c *CompositionRoot) CreateEnsureCartCommandHandler() commands.EnsureCartCommandHandler {
	return commands.NewEnsureCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateAddCartLineCommandHandler() commands.AddCartLineCommandHandler {
	return commands.NewAddCartLineCommandHandler(c.cartUoWFactory(), c.invalidator(), c.logger)
}

func (c *CompositionRoot) CreateUpdateCartLineCommandHandler() commands.UpdateCartLineCommandHandler {
	return commands.NewUpdateCartLineCommandHandler(c.cartUoWFactory(), c.invalidator(), c.logger)
}

func (c *CompositionRoot) CreateRemoveCartLineCommandHandler() commands.RemoveCartLineCommandHandler {
	return commands.NewRemoveCartLineCommandHandler(c.cartUoWFactory(), c.invalidator(), c.logger)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory(), c.invalidator(), c.logger)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.invalidator(), c.logger)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPreparationCommandHandler() commands.RecordPreparationCommandHandler {
	return commands.NewRecordPreparationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkReadyToShipCommandHandler() commands.MarkReadyToShipCommandHandler {
	return commands.NewMarkReadyToShipCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory())
}

// CreatePublishOutboxCommandHandler returns false when no publisher is
// configured.
func (c *CompositionRoot) CreatePublishOutboxCommandHandler() (commands.PublishOutboxCommandHandler, bool) {
	if c.publisher == nil {
		return commands.PublishOutboxCommandHandler{}, false
	}
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOutboxCommandHandler(f, c.publisher, c.logger), true
}

func (c *CompositionRoot) CreateGetCartQueryHandler() *queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB, c.cartCache, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

// CreateHTTPHandlers collects the use cases served by the REST adapter.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		EnsureCart:        c.CreateEnsureCartCommandHandler(),
		AddCartLine:       c.CreateAddCartLineCommandHandler(),
		UpdateCartLine:    c.CreateUpdateCartLineCommandHandler(),
		RemoveCartLine:    c.CreateRemoveCartLineCommandHandler(),
		ClearCart:         c.CreateClearCartCommandHandler(),
		Checkout:          c.CreateCheckoutCommandHandler(),
		PayOrder:          c.CreatePayOrderCommandHandler(),
		RecordPreparation: c.CreateRecordPreparationCommandHandler(),
		MarkReadyToShip:   c.CreateMarkReadyToShipCommandHandler(),
		ShipOrder:         c.CreateShipOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		SetOrderStatus:    c.CreateSetOrderStatusCommandHandler(),
		GetCart:           c.CreateGetCartQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
	}
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
