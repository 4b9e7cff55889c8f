package http

import (
	"net/http"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// PreparationLine carries the picked count for one line. Out of range counts,
// negative ones included, are clamped to [0, quantity] by the order.
type PreparationLine struct {
	LineID           string `json:"line_id" validate:"required,uuid"`
	PreparedQuantity int    `json:"prepared_quantity"`
}

type RecordPreparationRequest struct {
	Lines []PreparationLine `json:"lines" validate:"required,min=1,dive"`
}

type SetOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Checkout handles POST /api/v1/orders: the caller's cart becomes a pending
// order.
func (s *Server) Checkout(c echo.Context) error {
	actor := actorFrom(c)
	cmd, err := commands.NewCheckoutCommand(actor)
	if err != nil {
		return err
	}
	o, err := s.h.Checkout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusCreated, actor, o.ID())
}

// ListOrders handles GET /api/v1/orders[?status=paid]. Customers see their own
// orders, staff see all.
func (s *Server) ListOrders(c echo.Context) error {
	var status *order.Status
	if raw := c.QueryParam("status"); raw != "" {
		st, err := order.ParseStatus(raw)
		if err != nil {
			return err
		}
		status = &st
	}

	query, err := queries.NewListOrdersQuery(actorFrom(c), status)
	if err != nil {
		return err
	}
	views, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actorFrom(c), orderID)
}

func (s *Server) PayOrder(c echo.Context) error {
	return s.transition(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewPayOrderCommand(actor, orderID)
		if err != nil {
			return err
		}
		_, err = s.h.PayOrder.Handle(c.Request().Context(), cmd)
		return err
	})
}

// RecordPreparation handles POST /api/v1/orders/:id/prepare with the picked
// quantity per line.
func (s *Server) RecordPreparation(c echo.Context) error {
	var req RecordPreparationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	updates := make([]order.PreparationUpdate, 0, len(req.Lines))
	for _, l := range req.Lines {
		lineID, err := kernel.UUIDFromString(l.LineID)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("line_id", err)
		}
		updates = append(updates, order.PreparationUpdate{LineID: lineID, PreparedQuantity: l.PreparedQuantity})
	}

	return s.transition(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewRecordPreparationCommand(actor, orderID, updates)
		if err != nil {
			return err
		}
		_, err = s.h.RecordPreparation.Handle(c.Request().Context(), cmd)
		return err
	})
}

func (s *Server) MarkReadyToShip(c echo.Context) error {
	return s.transition(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewMarkReadyToShipCommand(actor, orderID)
		if err != nil {
			return err
		}
		_, err = s.h.MarkReadyToShip.Handle(c.Request().Context(), cmd)
		return err
	})
}

func (s *Server) ShipOrder(c echo.Context) error {
	return s.transition(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewShipOrderCommand(actor, orderID)
		if err != nil {
			return err
		}
		_, err = s.h.ShipOrder.Handle(c.Request().Context(), cmd)
		return err
	})
}

func (s *Server) CancelOrder(c echo.Context) error {
	return s.transition(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, err := commands.NewCancelOrderCommand(actor, orderID)
		if err != nil {
			return err
		}
		_, err = s.h.CancelOrder.Handle(c.Request().Context(), cmd)
		return err
	})
}

// SetOrderStatus handles PATCH /api/v1/orders/:id/status. Staff only.
func (s *Server) SetOrderStatus(c echo.Context) error {
	var req SetOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	return s.transition(c, func(actor kernel.Actor, orderID kernel.UUID) error {
		cmd, cmdErr := commands.NewSetOrderStatusCommand(actor, orderID, status)
		if cmdErr != nil {
			return cmdErr
		}
		_, cmdErr = s.h.SetOrderStatus.Handle(c.Request().Context(), cmd)
		return cmdErr
	})
}

// transition runs one fulfillment command against the order in the path and
// responds with the updated order view.
func (s *Server) transition(c echo.Context, run func(actor kernel.Actor, orderID kernel.UUID) error) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	actor := actorFrom(c)
	if err = run(actor, orderID); err != nil {
		return err
	}
	return s.respondWithOrder(c, http.StatusOK, actor, orderID)
}

func (s *Server) respondWithOrder(c echo.Context, status int, actor kernel.Actor, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(actor, orderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, view)
}
