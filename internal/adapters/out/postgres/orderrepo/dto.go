// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Lines live in order_lines and are owned by the order.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;index"`
	CustomerName string          `gorm:"not null"`
	Status       int             `gorm:"type:smallint"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(12,2)"`
	PlacedAt     time.Time
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
	Version      int
	Lines        []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one purchased product with the unit price captured at checkout.
type OrderLineDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid"`
	Quantity         int             `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(12,2)"`
	PreparedQuantity int             `gorm:"not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	customer := o.Customer()
	dto := OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerID:   customer.ID.Bytes(),
		CustomerName: customer.Name,
		Status:       int(o.Status()),
		TotalAmount:  o.Total().Decimal(),
		PlacedAt:     o.PlacedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Version:      o.Version(),
	}

	for _, l := range o.Lines() {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			ID:               l.ID().Bytes(),
			OrderID:          dto.ID,
			ProductID:        l.ProductID().Bytes(),
			Quantity:         l.Quantity(),
			UnitPrice:        l.UnitPrice().Decimal(),
			PreparedQuantity: l.PreparedQuantity(),
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		order.Customer{ID: customerID, Name: dto.CustomerName},
		order.Status(dto.Status),
		lines,
		total,
		dto.PlacedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(id, productID, dto.Quantity, unitPrice, dto.PreparedQuantity)
}
