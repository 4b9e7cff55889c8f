package queries

import (
	"time"

	"shop/internal/core/domain/model/kernel"
)

// ProductView is the product detail nested in cart and order lines. Price is
// the current catalog price.
type ProductView struct {
	ID    kernel.UUID  `json:"id"`
	Name  string       `json:"name"`
	Price kernel.Money `json:"price"`
}

type CartItemView struct {
	ID       kernel.UUID  `json:"id"`
	Product  ProductView  `json:"product"`
	Quantity int          `json:"quantity"`
	Subtotal kernel.Money `json:"subtotal"`
	AddedAt  time.Time    `json:"added_at"`
}

// CartView is the cart as returned to its owner. Subtotals and the total use
// current product prices and are never stored.
type CartView struct {
	ID        kernel.UUID    `json:"id"`
	UserID    kernel.UUID    `json:"user_id"`
	Items     []CartItemView `json:"items"`
	Total     kernel.Money   `json:"total"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type CustomerView struct {
	ID   kernel.UUID `json:"id"`
	Name string      `json:"name"`
}

type OrderLineView struct {
	ID               kernel.UUID  `json:"id"`
	Product          ProductView  `json:"product"`
	Quantity         int          `json:"quantity"`
	UnitPrice        kernel.Money `json:"unit_price"`
	PreparedQuantity int          `json:"prepared_quantity"`
	Subtotal         kernel.Money `json:"subtotal"`
}

type OrderView struct {
	ID          kernel.UUID     `json:"id"`
	Customer    CustomerView    `json:"customer"`
	Status      string          `json:"status"`
	TotalAmount kernel.Money    `json:"total_amount"`
	PlacedAt    time.Time       `json:"placed_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Lines       []OrderLineView `json:"lines"`
}
