package http

import (
	"net/http"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

// GetCart handles GET /api/v1/cart. The cart is created on first access.
func (s *Server) GetCart(c echo.Context) error {
	actor := actorFrom(c)
	ctx := c.Request().Context()

	ensure, err := commands.NewEnsureCartCommand(actor.UserID)
	if err != nil {
		return err
	}
	if _, err = s.h.EnsureCart.Handle(ctx, ensure); err != nil {
		return err
	}

	return s.respondWithCart(c, http.StatusOK, actor.UserID)
}

// AddCartItem handles POST /api/v1/cart/items and responds with the whole
// cart so the client sees the new totals.
func (s *Server) AddCartItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("product_id", err)
	}

	actor := actorFrom(c)
	cmd, err := commands.NewAddCartLineCommand(actor.UserID, productID, req.Quantity)
	if err != nil {
		return err
	}
	if _, err = s.h.AddCartLine.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithCart(c, http.StatusCreated, actor.UserID)
}

// UpdateCartItem handles PATCH /api/v1/cart/items/:id.
func (s *Server) UpdateCartItem(c echo.Context) error {
	lineID, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateCartItemRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	actor := actorFrom(c)
	cmd, err := commands.NewUpdateCartLineCommand(actor.UserID, lineID, req.Quantity)
	if err != nil {
		return err
	}
	if _, err = s.h.UpdateCartLine.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithCart(c, http.StatusOK, actor.UserID)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:id.
func (s *Server) RemoveCartItem(c echo.Context) error {
	lineID, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveCartLineCommand(actorFrom(c).UserID, lineID)
	if err != nil {
		return err
	}
	if err = s.h.RemoveCartLine.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	cmd, err := commands.NewClearCartCommand(actorFrom(c).UserID)
	if err != nil {
		return err
	}
	if err = s.h.ClearCart.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) respondWithCart(c echo.Context, status int, userID kernel.UUID) error {
	query, err := queries.NewGetCartQuery(userID)
	if err != nil {
		return err
	}
	view, err := s.h.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, view)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}
