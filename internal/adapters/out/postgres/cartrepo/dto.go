// Package cartrepo persists cart aggregates: one carts row per user and one
// cart_lines row per product in the cart.
package cartrepo

import (
	"time"

	"shop/internal/core/domain/model/cart"
	"shop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CartDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (CartDTO) TableName() string {
	return "carts"
}

type CartLineDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	AddedAt   time.Time
}

func (CartLineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(c *cart.Cart) (CartDTO, []CartLineDTO) {
	dto := CartDTO{
		ID:        c.ID().Bytes(),
		UserID:    c.UserID().Bytes(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}

	lines := c.Lines()
	lineDTOs := make([]CartLineDTO, 0, len(lines))
	for _, l := range lines {
		lineDTOs = append(lineDTOs, CartLineDTO{
			ID:        l.ID().Bytes(),
			CartID:    dto.ID,
			ProductID: l.ProductID().Bytes(),
			Quantity:  l.Quantity(),
			AddedAt:   l.AddedAt(),
		})
	}

	return dto, lineDTOs
}

func toDomain(dto CartDTO, lineDTOs []CartLineDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*cart.Line, 0, len(lineDTOs))
	for _, l := range lineDTOs {
		lineID, lineErr := kernel.UUIDFromBytes(l.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		productID, lineErr := kernel.UUIDFromBytes(l.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		line, lineErr := cart.RestoreLine(lineID, productID, l.Quantity, l.AddedAt)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(id, userID, lines, dto.CreatedAt, dto.UpdatedAt)
}
