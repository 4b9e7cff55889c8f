package ports

import (
	"context"

	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"
)

// ProductRepository gives read access to catalog rows. Add exists for
// seeding and tests; product CRUD belongs to the catalog service.
type ProductRepository interface {
	Add(ctx context.Context, product *catalog.Product) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)
}

// InventoryLedger owns every change to available stock.
type InventoryLedger interface {
	// Reserve atomically decrements stock by quantity if and only if enough
	// stock is available, returning the product as it is after the decrement.
	// The check and the write are a single statement, so concurrent callers
	// can neither oversell nor lose updates.
	//
	// Returns *catalog.InsufficientStockError when stock is short and
	// errs.ErrObjectNotFound when the product does not exist.
	Reserve(ctx context.Context, productID kernel.UUID, quantity int) (*catalog.Product, error)

	// Release atomically returns quantity units to stock. Used when an order
	// is cancelled.
	Release(ctx context.Context, productID kernel.UUID, quantity int) error
}
