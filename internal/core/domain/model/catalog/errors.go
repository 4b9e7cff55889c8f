package catalog

import (
	"errors"
	"fmt"

	"shop/internal/core/domain/model/kernel"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports that a product cannot cover a requested quantity.
type InsufficientStockError struct {
	ProductID   kernel.UUID
	ProductName string
	Requested   int
	Available   int
}

func NewInsufficientStockError(productID kernel.UUID, productName string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID:   productID,
		ProductName: productName,
		Requested:   requested,
		Available:   available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %q (%s) requested %d, available %d",
		ErrInsufficientStock, e.ProductName, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
