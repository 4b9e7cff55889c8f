package queries

import (
	"context"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderColumns = `
	SELECT id, customer_id, customer_name, status, total_amount, placed_at, updated_at
	FROM orders`

type orderRow struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	Status       int
	TotalAmount  decimal.Decimal
	PlacedAt     time.Time
	UpdatedAt    time.Time
}

type orderLineRow struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	Quantity         int
	UnitPrice        decimal.Decimal
	PreparedQuantity int
	ProductID        uuid.UUID
	ProductName      string
	ProductPrice     decimal.Decimal
}

// GetOrderQueryHandler reads one order with its lines.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound both for a missing order and for an
// order the actor may not see.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var row orderRow
	result := db.Raw(orderColumns+` WHERE id = ?`, query.OrderID().Bytes()).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	views, err := assembleOrders(db, []orderRow{row})
	if err != nil {
		return nil, err
	}

	view := views[0]
	if !query.Actor().CanAccess(view.Customer.ID) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	return &view, nil
}

// ListOrdersQueryHandler lists orders with their lines, newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	sql := orderColumns + ` WHERE TRUE`
	args := make([]any, 0, 2)
	if !query.Actor().Staff {
		sql += ` AND customer_id = ?`
		args = append(args, query.Actor().UserID.Bytes())
	}
	if status := query.Status(); status != nil {
		sql += ` AND status = ?`
		args = append(args, int(*status))
	}
	sql += ` ORDER BY placed_at DESC, id`

	var rows []orderRow
	if err := db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return assembleOrders(db, rows)
}

func assembleOrders(db *gorm.DB, rows []orderRow) ([]OrderView, error) {
	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var lineRows []orderLineRow
	err := db.Raw(`
		SELECT
			l.id,
			l.order_id,
			l.quantity,
			l.unit_price,
			l.prepared_quantity,
			p.id AS product_id,
			p.name AS product_name,
			p.price AS product_price
		FROM order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id IN ?
		ORDER BY l.order_id, l.product_id
	`, ids).Scan(&lineRows).Error
	if err != nil {
		return nil, err
	}

	linesByOrder := make(map[uuid.UUID][]OrderLineView, len(rows))
	for _, lr := range lineRows {
		line, lineErr := lr.toView()
		if lineErr != nil {
			return nil, lineErr
		}
		linesByOrder[lr.OrderID] = append(linesByOrder[lr.OrderID], line)
	}

	for _, row := range rows {
		view, viewErr := row.toView(linesByOrder[row.ID])
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}
	return views, nil
}

func (row orderRow) toView(lines []OrderLineView) (OrderView, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return OrderView{}, err
	}
	total, err := kernel.NewMoney(row.TotalAmount)
	if err != nil {
		return OrderView{}, err
	}
	if lines == nil {
		lines = make([]OrderLineView, 0)
	}

	return OrderView{
		ID:          id,
		Customer:    CustomerView{ID: customerID, Name: row.CustomerName},
		Status:      order.Status(row.Status).String(),
		TotalAmount: total,
		PlacedAt:    row.PlacedAt,
		UpdatedAt:   row.UpdatedAt,
		Lines:       lines,
	}, nil
}

func (row orderLineRow) toView() (OrderLineView, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OrderLineView{}, err
	}
	product, err := productView(row.ProductID, row.ProductName, row.ProductPrice)
	if err != nil {
		return OrderLineView{}, err
	}
	unitPrice, err := kernel.NewMoney(row.UnitPrice)
	if err != nil {
		return OrderLineView{}, err
	}

	return OrderLineView{
		ID:               id,
		Product:          product,
		Quantity:         row.Quantity,
		UnitPrice:        unitPrice,
		PreparedQuantity: row.PreparedQuantity,
		Subtotal:         unitPrice.Times(row.Quantity),
	}, nil
}
