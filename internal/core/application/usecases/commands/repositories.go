// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination of repositories it uses.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	InventoryLedgerFactory interface {
		InventoryLedger() ports.InventoryLedger
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// CartUoW serves cart mutations: the cart plus read access to products
	// for the advisory active and stock checks.
	CartUoW interface {
		TxManager
		CartRepoFactory
		ProductRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// OrderUoW serves fulfillment transitions. The ledger is used by
	// cancellation to return stock.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		InventoryLedgerFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW spans every aggregate touched by checkout: the cart is cleared, stock
	// is reserved and the order is added in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   c, err := uow.CartRepository().GetByUserForUpdate(ctx, userID)
	//   p, err := uow.InventoryLedger().Reserve(ctx, productID, qty)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CartRepoFactory
		ProductRepoFactory
		OrderRepoFactory
		InventoryLedgerFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// CartViewInvalidator drops a user's cached cart view. Handlers call it
	// after a cart change has committed.
	CartViewInvalidator interface {
		Delete(ctx context.Context, userID kernel.UUID) error
	}
)

func utcNow() time.Time {
	return time.Now().UTC()
}
