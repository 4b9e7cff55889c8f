// Package ports defines the persistence and messaging contracts of the
// fulfillment core. Adapters under internal/adapters/out implement them.
package ports

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status, prepared quantities and timestamps of an
	// existing order. It is a compare-and-set on the order's version: if the
	// stored version differs, errs.ErrVersionIsInvalid is returned and nothing
	// is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines.
	// Returns errs.ErrObjectNotFound if the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the end of the
	// current transaction, so transitions on one order serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
