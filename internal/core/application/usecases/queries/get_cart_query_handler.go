package queries

import (
	"context"
	"errors"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrCacheMiss is returned by a CartViewCache that holds no entry for the user.
var ErrCacheMiss = errors.New("cart view not cached")

// CartViewCache stores rendered cart views keyed by user.
type CartViewCache interface {
	Get(ctx context.Context, userID kernel.UUID) (*CartView, error)
	Set(ctx context.Context, view *CartView) error
	Delete(ctx context.Context, userID kernel.UUID) error
}

// GetCartQueryHandler renders a cart from the database, reading through the
// cache when one is configured. Concurrent misses for the same user share a
// single database read.
type GetCartQueryHandler struct {
	db     *gorm.DB
	cache  CartViewCache
	group  singleflight.Group
	logger *zap.Logger
}

// NewGetCartQueryHandler creates the handler. cache may be nil.
func NewGetCartQueryHandler(db *gorm.DB, cache CartViewCache, logger *zap.Logger) *GetCartQueryHandler {
	return &GetCartQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With(zap.String("component", "get_cart_query")),
	}
}

func (h *GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (*CartView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		view, err := h.cache.Get(ctx, query.UserID())
		switch {
		case err == nil:
			return view, nil
		case !errors.Is(err, ErrCacheMiss):
			h.logger.Warn("cart cache read failed", zap.String("user_id", query.UserID().String()), zap.Error(err))
		}
	}

	v, err, _ := h.group.Do(query.UserID().String(), func() (any, error) {
		view, loadErr := h.load(ctx, query.UserID())
		if loadErr != nil {
			return nil, loadErr
		}
		if h.cache != nil {
			if setErr := h.cache.Set(ctx, view); setErr != nil {
				h.logger.Warn("cart cache write failed", zap.String("user_id", view.UserID.String()), zap.Error(setErr))
			}
		}
		return view, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*CartView), nil
}

type cartItemRow struct {
	ID           uuid.UUID
	Quantity     int
	AddedAt      time.Time
	ProductID    uuid.UUID
	ProductName  string
	ProductPrice decimal.Decimal
}

func (h *GetCartQueryHandler) load(ctx context.Context, userID kernel.UUID) (*CartView, error) {
	db := h.db.WithContext(ctx)

	var header struct {
		ID        uuid.UUID
		UserID    uuid.UUID
		CreatedAt time.Time
		UpdatedAt time.Time
	}
	result := db.Raw(`
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = ?
	`, userID.Bytes()).Scan(&header)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("cart", userID.String())
	}

	var rows []cartItemRow
	err := db.Raw(`
		SELECT
			l.id,
			l.quantity,
			l.added_at,
			p.id AS product_id,
			p.name AS product_name,
			p.price AS product_price
		FROM cart_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.cart_id = ?
		ORDER BY l.product_id
	`, header.ID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	cartID, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return nil, err
	}

	view := &CartView{
		ID:        cartID,
		UserID:    userID,
		Items:     make([]CartItemView, 0, len(rows)),
		CreatedAt: header.CreatedAt,
		UpdatedAt: header.UpdatedAt,
	}

	subtotals := make([]kernel.Money, 0, len(rows))
	for _, row := range rows {
		item, itemErr := row.toView()
		if itemErr != nil {
			return nil, itemErr
		}
		view.Items = append(view.Items, item)
		subtotals = append(subtotals, item.Subtotal)
	}
	view.Total = kernel.SumMoney(subtotals...)

	return view, nil
}

func (row cartItemRow) toView() (CartItemView, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return CartItemView{}, err
	}
	product, err := productView(row.ProductID, row.ProductName, row.ProductPrice)
	if err != nil {
		return CartItemView{}, err
	}

	return CartItemView{
		ID:       id,
		Product:  product,
		Quantity: row.Quantity,
		Subtotal: product.Price.Times(row.Quantity),
		AddedAt:  row.AddedAt,
	}, nil
}

func productView(id uuid.UUID, name string, price decimal.Decimal) (ProductView, error) {
	productID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ProductView{}, err
	}
	money, err := kernel.NewMoney(price)
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{ID: productID, Name: name, Price: money}, nil
}
