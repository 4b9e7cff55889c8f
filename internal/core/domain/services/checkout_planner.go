package services

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// ErrReservationMismatch is returned when the reserved products do not line up
// with the reservation plan.
var ErrReservationMismatch = errors.New("reserved products do not match the reservation plan")

// Reservation is one stock decrement the inventory ledger must perform.
type Reservation struct {
	ProductID kernel.UUID
	Quantity  int
}

// CheckoutPlanner is a domain service that converts a cart into an order.
//
// Business rules:
//   - An empty cart cannot be checked out
//   - Reservations are made in ascending product id order so that concurrent
//     checkouts lock product rows in the same sequence and cannot deadlock
//   - Every order line captures the product price returned by the reservation,
//     not the price seen when the line was added to the cart
//
// Example usage:
//
//	planner := services.NewCheckoutPlanner()
//	plan, err := planner.Plan(c)
//	// reserve each entry of plan in order, collecting the reserved products
//	o, err := planner.BuildOrder(kernel.NewUUID(), customer, plan, reserved, now)
type CheckoutPlanner struct{}

// NewCheckoutPlanner creates a new CheckoutPlanner instance.
func NewCheckoutPlanner() CheckoutPlanner {
	return CheckoutPlanner{}
}

// Plan returns the reservations for every cart line, sorted by product id.
// Returns cart.ErrCartIsEmpty when there is nothing to check out.
func (CheckoutPlanner) Plan(c *cart.Cart) ([]Reservation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrCartIsEmpty
	}

	lines := c.Lines()
	plan := make([]Reservation, 0, len(lines))
	for _, l := range lines {
		plan = append(plan, Reservation{ProductID: l.ProductID(), Quantity: l.Quantity()})
	}
	return plan, nil
}

// BuildOrder places a Pending order for customer with one line per
// reservation. reserved[i] must be the product returned by reserving plan[i].
func (CheckoutPlanner) BuildOrder(
	orderID kernel.UUID,
	customer order.Customer,
	plan []Reservation,
	reserved []*catalog.Product,
	now time.Time,
) (*order.Order, error) {
	if len(plan) != len(reserved) {
		return nil, fmt.Errorf("%w: %d planned, %d reserved", ErrReservationMismatch, len(plan), len(reserved))
	}

	o, err := order.NewOrder(orderID, customer, now)
	if err != nil {
		return nil, err
	}

	for i, r := range plan {
		product := reserved[i]
		if err = product.Validate(); err != nil {
			return nil, err
		}
		if !product.ID().IsEqual(r.ProductID) {
			return nil, fmt.Errorf("%w: expected %s, got %s", ErrReservationMismatch, r.ProductID, product.ID())
		}
		if _, err = o.AddLine(r.ProductID, r.Quantity, product.Price()); err != nil {
			return nil, err
		}
	}

	if err = o.Place(now); err != nil {
		return nil, err
	}
	return o, nil
}
