package order

import (
	"time"

	"shop/internal/core/domain/model/kernel"
)

const (
	AggregateType = "order"

	EventTypePlaced        = "order.placed"
	EventTypeStatusChanged = "order.status_changed"
)

// PlacedLine is the line snapshot carried by Placed.
type PlacedLine struct {
	ProductID kernel.UUID  `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice kernel.Money `json:"unit_price"`
}

// Placed is recorded once, when checkout places the order.
type Placed struct {
	OrderID    kernel.UUID  `json:"order_id"`
	CustomerID kernel.UUID  `json:"customer_id"`
	Lines      []PlacedLine `json:"lines"`
	Total      kernel.Money `json:"total"`
	PlacedAt   time.Time    `json:"placed_at"`
}

func (e Placed) EventType() string        { return EventTypePlaced }
func (e Placed) AggregateType() string    { return AggregateType }
func (e Placed) AggregateID() kernel.UUID { return e.OrderID }
func (e Placed) OccurredAt() time.Time    { return e.PlacedAt }

// StatusChanged is recorded by every transition that actually changes the status.
type StatusChanged struct {
	OrderID   kernel.UUID `json:"order_id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	ActorID   kernel.UUID `json:"actor_id"`
	ChangedAt time.Time   `json:"changed_at"`
}

func (e StatusChanged) EventType() string        { return EventTypeStatusChanged }
func (e StatusChanged) AggregateType() string    { return AggregateType }
func (e StatusChanged) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChanged) OccurredAt() time.Time    { return e.ChangedAt }
