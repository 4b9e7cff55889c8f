package ports

import (
	"context"
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
type CartRepository interface {
	// Ensure returns the user's cart, creating an empty one if it does not
	// exist yet. Safe to call concurrently for the same user.
	Ensure(ctx context.Context, userID kernel.UUID, now time.Time) (*cart.Cart, error)

	// GetByUserForUpdate loads the user's cart with the cart row locked until
	// the end of the current transaction.
	// Returns errs.ErrObjectNotFound if the user has no cart.
	GetByUserForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// Save writes the cart and makes the stored lines match the aggregate:
	// removed lines are deleted, new lines inserted, changed lines updated.
	Save(ctx context.Context, aggregate *cart.Cart) error
}
