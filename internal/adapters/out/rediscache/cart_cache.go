// Package rediscache keeps rendered cart views in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/breaker"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const DefaultTTL = 15 * time.Minute

// CartCache implements queries.CartViewCache. Calls go through a circuit
// breaker so a failing Redis degrades to database reads quickly.
type CartCache struct {
	client  redis.UniversalClient
	baseTTL time.Duration
	cb      *gobreaker.CircuitBreaker
}

func NewCartCache(client redis.UniversalClient, baseTTL time.Duration, logger *zap.Logger) *CartCache {
	if baseTTL <= 0 {
		baseTTL = DefaultTTL
	}
	return &CartCache{
		client:  client,
		baseTTL: baseTTL,
		cb: breaker.New("CartCache", logger, func(err error) bool {
			return err == nil || errors.Is(err, queries.ErrCacheMiss)
		}),
	}
}

func (c *CartCache) Get(ctx context.Context, userID kernel.UUID) (*queries.CartView, error) {
	return breaker.Execute(c.cb, func() (*queries.CartView, error) {
		data, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, queries.ErrCacheMiss
		}
		if err != nil {
			return nil, fmt.Errorf("redis get failed: %w", err)
		}

		var view queries.CartView
		if err = json.Unmarshal(data, &view); err != nil {
			return nil, fmt.Errorf("unmarshal cart view failed: %w", err)
		}
		return &view, nil
	})
}

// Set stores the view for baseTTL plus up to four minutes of jitter so
// entries written together do not expire together.
func (c *CartCache) Set(ctx context.Context, view *queries.CartView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal cart view failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	_, err = breaker.Execute(c.cb, func() (string, error) {
		return c.client.Set(ctx, cacheKey(view.UserID), data, c.baseTTL+jitter).Result()
	})
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *CartCache) Delete(ctx context.Context, userID kernel.UUID) error {
	_, err := breaker.Execute(c.cb, func() (int64, error) {
		return c.client.Del(ctx, cacheKey(userID)).Result()
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(userID kernel.UUID) string {
	return fmt.Sprintf("cart:%s", userID)
}
