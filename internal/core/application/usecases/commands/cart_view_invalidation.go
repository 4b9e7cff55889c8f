package commands

import (
	"context"

	"shop/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// invalidateCartView drops the cached view. A failure leaves a stale entry
// that expires with its TTL, so it is logged rather than returned.
func invalidateCartView(ctx context.Context, cache CartViewInvalidator, logger *zap.Logger, userID kernel.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, userID); err != nil {
		logger.Warn("cart view invalidation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
