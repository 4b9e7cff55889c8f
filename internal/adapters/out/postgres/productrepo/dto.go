// Package productrepo persists catalog products and implements the inventory
// ledger on top of the products table.
package productrepo

import (
	"time"

	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock     int             `gorm:"not null"`
	Active    bool            `gorm:"not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:     p.ID().Bytes(),
		Name:   p.Name(),
		Price:  p.Price().Decimal(),
		Stock:  p.Stock(),
		Active: p.IsActive(),
	}
}

func toDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return catalog.RestoreProduct(id, dto.Name, price, dto.Stock, dto.Active)
}
