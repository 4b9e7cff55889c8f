package cart_test

import (
	"testing"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newProduct(t *testing.T, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(kernel.NewUUID(), "Widget", kernel.MustMoney(price), stock)
	require.NoError(t, err)
	return p
}

func newCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID(), now)
	require.NoError(t, err)
	return c
}

func TestNewCart(t *testing.T) {
	c := newCart(t)

	require.NoError(t, c.Validate())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, now, c.CreatedAt())

	_, err := cart.NewCart(kernel.UUID{}, kernel.NewUUID(), now)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero cart.Cart
	assert.Equal(t, cart.ErrCartIsNotConstructed, zero.Validate())
}

func TestCart_AddOrReplaceLine(t *testing.T) {
	t.Run("adds a new line", func(t *testing.T) {
		c := newCart(t)
		p := newProduct(t, "9.99", 10)

		line, err := c.AddOrReplaceLine(p, 2, now)

		require.NoError(t, err)
		assert.Equal(t, 2, line.Quantity())
		assert.True(t, p.ID().IsEqual(line.ProductID()))
		assert.Equal(t, now, line.AddedAt())
		assert.Len(t, c.Lines(), 1)
	})

	t.Run("replaces quantity for the same product", func(t *testing.T) {
		c := newCart(t)
		p := newProduct(t, "9.99", 10)
		first, err := c.AddOrReplaceLine(p, 2, now)
		require.NoError(t, err)

		second, err := c.AddOrReplaceLine(p, 5, now.Add(time.Minute))

		require.NoError(t, err)
		assert.True(t, first.ID().IsEqual(second.ID()))
		assert.Equal(t, 5, second.Quantity())
		assert.Equal(t, now, second.AddedAt())
		assert.Len(t, c.Lines(), 1)
		assert.Equal(t, now.Add(time.Minute), c.UpdatedAt())
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		c := newCart(t)
		_, err := c.AddOrReplaceLine(newProduct(t, "1.00", 10), 0, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, errs.IsValidation(err))
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects quantity above stock", func(t *testing.T) {
		c := newCart(t)
		_, err := c.AddOrReplaceLine(newProduct(t, "1.00", 3), 4, now)

		require.ErrorIs(t, err, catalog.ErrInsufficientStock)
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects inactive products", func(t *testing.T) {
		c := newCart(t)
		p, err := catalog.RestoreProduct(kernel.NewUUID(), "Gone", kernel.MustMoney("1.00"), 5, false)
		require.NoError(t, err)

		_, err = c.AddOrReplaceLine(p, 1, now)

		require.ErrorIs(t, err, catalog.ErrProductNotActive)
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := newCart(t)
	p := newProduct(t, "2.00", 4)
	line, err := c.AddOrReplaceLine(p, 1, now)
	require.NoError(t, err)

	updated, err := c.UpdateQuantity(line.ID(), p, 4, now)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity())

	_, err = c.UpdateQuantity(line.ID(), p, 5, now)
	require.ErrorIs(t, err, catalog.ErrInsufficientStock)
	assert.Equal(t, 4, updated.Quantity())

	_, err = c.UpdateQuantity(line.ID(), newProduct(t, "2.00", 4), 1, now)
	require.ErrorIs(t, err, cart.ErrProductMismatch)

	_, err = c.UpdateQuantity(kernel.NewUUID(), p, 1, now)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCart_RemoveLine(t *testing.T) {
	c := newCart(t)
	line, err := c.AddOrReplaceLine(newProduct(t, "2.00", 4), 1, now)
	require.NoError(t, err)

	require.NoError(t, c.RemoveLine(line.ID(), now))
	assert.True(t, c.IsEmpty())
	require.ErrorIs(t, c.RemoveLine(line.ID(), now), errs.ErrObjectNotFound)
}

func TestCart_Clear(t *testing.T) {
	c := newCart(t)
	_, err := c.AddOrReplaceLine(newProduct(t, "2.00", 4), 1, now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	c.Clear(later)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, later, c.UpdatedAt())

	c.Clear(later.Add(time.Hour))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, later, c.UpdatedAt())
}

func TestCart_LinesSortedByProduct(t *testing.T) {
	c := newCart(t)
	for range 5 {
		_, err := c.AddOrReplaceLine(newProduct(t, "1.00", 10), 1, now)
		require.NoError(t, err)
	}

	lines := c.Lines()
	for i := 1; i < len(lines); i++ {
		assert.Negative(t, lines[i-1].ProductID().Compare(lines[i].ProductID()))
	}
}

func TestRestoreCart_RejectsDuplicateProducts(t *testing.T) {
	productID := kernel.NewUUID()
	l1, err := cart.RestoreLine(kernel.NewUUID(), productID, 1, now)
	require.NoError(t, err)
	l2, err := cart.RestoreLine(kernel.NewUUID(), productID, 2, now)
	require.NoError(t, err)

	_, err = cart.RestoreCart(kernel.NewUUID(), kernel.NewUUID(), []*cart.Line{l1, l2}, now, now)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
