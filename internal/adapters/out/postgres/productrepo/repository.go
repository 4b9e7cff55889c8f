package productrepo

import (
	"context"
	"errors"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"gorm.io/gorm"
)

const reserveSQL = `UPDATE products SET stock = stock - ?
WHERE id = ? AND active AND stock >= ?
RETURNING id, name, price, stock, active, created_at`

// GormProductRepository implements ports.ProductRepository and
// ports.InventoryLedger using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := fromDomain(product)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Reserve decrements stock with a single conditional UPDATE. Inactive
// products are never decremented. The row stays locked until the surrounding
// transaction ends.
func (r *GormProductRepository) Reserve(ctx context.Context, productID kernel.UUID, quantity int) (*catalog.Product, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if err := cart.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	var dto ProductDTO
	result := r.db.WithContext(ctx).Raw(reserveSQL, quantity, productID.Bytes(), quantity).Scan(&dto)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		current, err := r.Get(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err = current.CheckAvailable(quantity); err != nil {
			return nil, err
		}
		return nil, catalog.NewInsufficientStockError(current.ID(), current.Name(), quantity, current.Stock())
	}

	return toDomain(dto)
}

// Release returns quantity units to stock.
func (r *GormProductRepository) Release(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if err := cart.ValidateQuantity(quantity); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", productID.Bytes()).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return nil
}
