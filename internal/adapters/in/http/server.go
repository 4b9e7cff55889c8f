// Package http is the REST adapter of the shop service. It binds the cart,
// checkout and order operations to echo routes under /api/v1.
package http

import (
	"context"
	"net/http"
	"time"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handler is any command or query handler that returns a result.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// VoidHandler is a command handler without a result.
type VoidHandler[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	EnsureCart     Handler[commands.EnsureCartCommand, *cart.Cart]
	AddCartLine    Handler[commands.AddCartLineCommand, *cart.Line]
	UpdateCartLine Handler[commands.UpdateCartLineCommand, *cart.Line]
	RemoveCartLine VoidHandler[commands.RemoveCartLineCommand]
	ClearCart      VoidHandler[commands.ClearCartCommand]

	Checkout          Handler[commands.CheckoutCommand, *order.Order]
	PayOrder          Handler[commands.PayOrderCommand, *order.Order]
	RecordPreparation Handler[commands.RecordPreparationCommand, *order.Order]
	MarkReadyToShip   Handler[commands.MarkReadyToShipCommand, *order.Order]
	ShipOrder         Handler[commands.ShipOrderCommand, *order.Order]
	CancelOrder       Handler[commands.CancelOrderCommand, *order.Order]
	SetOrderStatus    Handler[commands.SetOrderStatusCommand, *order.Order]

	GetCart    Handler[queries.GetCartQuery, *queries.CartView]
	GetOrder   Handler[queries.GetOrderQuery, *queries.OrderView]
	ListOrders Handler[queries.ListOrdersQuery, []queries.OrderView]
}

// Server holds the use case handlers and serves them over echo.
type Server struct {
	h       Handlers
	logger  *zap.Logger
	timeout time.Duration
}

func NewServer(handlers Handlers, logger *zap.Logger, timeout time.Duration) *Server {
	return &Server{
		h:       handlers,
		logger:  logger.With(zap.String("component", "http")),
		timeout: timeout,
	}
}

// NewEcho returns an echo instance with the server's middleware, validator,
// error handler and routes installed.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(s.logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger())
	if s.timeout > 0 {
		e.Use(middleware.ContextTimeout(s.timeout))
	}

	s.RegisterRoutes(e)
	return e
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", identity)

	api.GET("/cart", s.GetCart)
	api.DELETE("/cart", s.ClearCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PATCH("/cart/items/:id", s.UpdateCartItem)
	api.DELETE("/cart/items/:id", s.RemoveCartItem)

	api.POST("/orders", s.Checkout)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/pay", s.PayOrder)
	api.POST("/orders/:id/prepare", s.RecordPreparation)
	api.POST("/orders/:id/ready-to-ship", s.MarkReadyToShip)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.PATCH("/orders/:id/status", s.SetOrderStatus)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			s.logger.Info("request", fields...)
			return nil
		},
	})
}
