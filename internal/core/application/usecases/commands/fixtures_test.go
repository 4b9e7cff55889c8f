package commands_test

import (
	"testing"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newActor(t *testing.T, staff bool) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), "Ada", staff)
	require.NoError(t, err)
	return actor
}

func newProduct(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(kernel.NewUUID(), name, kernel.MustMoney(price), stock)
	require.NoError(t, err)
	return p
}

func newCart(t *testing.T, userID kernel.UUID) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), userID, fixedNow)
	require.NoError(t, err)
	return c
}

// placedOrder returns a Pending order owned by customer with one line per
// product, each of the given quantity.
func placedOrder(t *testing.T, customer kernel.Actor, quantity int, products ...*catalog.Product) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.Customer{ID: customer.UserID, Name: customer.Name}, fixedNow)
	require.NoError(t, err)
	for _, p := range products {
		_, err = o.AddLine(p.ID(), quantity, p.Price())
		require.NoError(t, err)
	}
	require.NoError(t, o.Place(fixedNow))
	return o
}
