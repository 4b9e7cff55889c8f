package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderIsPlaced is returned when lines are added after Place.
	ErrOrderIsPlaced = errors.New("order lines cannot change once the order is placed")

	// ErrOrderHasNoLines is returned by Place on an order without lines.
	ErrOrderHasNoLines = errors.New("order has no lines")
)

// Customer is the denormalized reference to the user who placed the order.
type Customer struct {
	ID   kernel.UUID
	Name string
}

// PreparationUpdate reports how many units of one line have been picked.
type PreparationUpdate struct {
	LineID           kernel.UUID
	PreparedQuantity int
}

// Order is the aggregate root for a placed purchase. It is built by checkout
// (NewOrder, AddLine, Place) and afterwards changes only through the
// fulfillment transitions, which touch the status, the per-line prepared
// quantities and the timestamps.
//
// Order follows these invariants:
//   - Lines are fixed once the order is placed
//   - Total always equals the rounded sum of line subtotals
//   - 0 <= prepared quantity <= quantity for every line
//   - Status changes only through the transitions below, each guarded by status and actor
type Order struct {
	id        kernel.UUID
	customer  Customer
	status    Status
	lines     []*Line
	total     kernel.Money
	placedAt  time.Time
	updatedAt time.Time
	version   int
	placed    bool

	events []kernel.DomainEvent

	isConstructed bool
}

// NewOrder starts a Pending order for customer. Lines are added with AddLine
// and the order is sealed with Place.
func NewOrder(id kernel.UUID, customer Customer, now time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		total:         kernel.ZeroMoney(),
		placedAt:      now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a placed order from storage.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	status Status,
	lines []*Line,
	total kernel.Money,
	placedAt, updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		total:         total,
		placedAt:      placedAt,
		updatedAt:     updatedAt,
		version:       version,
		placed:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setStatus(status),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID      { return o.id }
func (o *Order) Customer() Customer   { return o.customer }
func (o *Order) Status() Status       { return o.status }
func (o *Order) Total() kernel.Money  { return o.total }
func (o *Order) PlacedAt() time.Time  { return o.placedAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) Version() int         { return o.version }
func (o *Order) Lines() []*Line       { return slices.Clone(o.lines) }

// Line looks up a line by its id.
func (o *Order) Line(lineID kernel.UUID) (*Line, bool) {
	i := slices.IndexFunc(o.lines, func(l *Line) bool { return l.id.IsEqual(lineID) })
	if i < 0 {
		return nil, false
	}
	return o.lines[i], true
}

// AddLine appends a purchased line capturing unitPrice. Allowed only before Place.
func (o *Order) AddLine(productID kernel.UUID, quantity int, unitPrice kernel.Money) (*Line, error) {
	if o.placed {
		return nil, ErrOrderIsPlaced
	}

	line, err := RestoreLine(kernel.NewUUID(), productID, quantity, unitPrice, 0)
	if err != nil {
		return nil, err
	}

	o.lines = append(o.lines, line)
	return line, nil
}

// Place seals the lines, computes the total and records the Placed event.
func (o *Order) Place(now time.Time) error {
	if o.placed {
		return ErrOrderIsPlaced
	}
	if len(o.lines) == 0 {
		return ErrOrderHasNoLines
	}

	o.RecalculateTotal()
	o.placed = true
	o.placedAt = now
	o.updatedAt = now

	placedLines := make([]PlacedLine, 0, len(o.lines))
	for _, l := range o.lines {
		placedLines = append(placedLines, PlacedLine{
			ProductID: l.productID,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
		})
	}
	o.record(Placed{
		OrderID:    o.id,
		CustomerID: o.customer.ID,
		Lines:      placedLines,
		Total:      o.total,
		PlacedAt:   now,
	})
	return nil
}

// RecalculateTotal sets the total to the sum of line subtotals rounded half-up
// to two places and returns it. Calling it again without line changes yields
// the same total.
func (o *Order) RecalculateTotal() kernel.Money {
	subtotals := make([]kernel.Money, 0, len(o.lines))
	for _, l := range o.lines {
		subtotals = append(subtotals, l.Subtotal())
	}
	o.total = kernel.SumMoney(subtotals...)
	return o.total
}

// Pay moves a Pending order to Paid. The owner or staff may pay.
func (o *Order) Pay(actor kernel.Actor, now time.Time) error {
	if !actor.CanAccess(o.customer.ID) {
		return errs.NewForbiddenError("pay order", actor.UserID)
	}

	next, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.changeStatus(next, actor, now)
	return nil
}

// RecordPreparation merges staff-reported picking progress. Each prepared
// quantity is clamped to [0, line quantity] and unknown line ids are skipped.
// When every line is fully prepared the order becomes Prepared; otherwise the
// status is left as it was, so a Prepared order is never demoted.
func (o *Order) RecordPreparation(updates []PreparationUpdate, actor kernel.Actor, now time.Time) error {
	if !actor.Staff {
		return errs.NewForbiddenError("record preparation", actor.UserID)
	}
	if err := o.status.ValidatePreparation(); err != nil {
		return err
	}

	for _, u := range updates {
		if line, ok := o.Line(u.LineID); ok {
			line.prepare(u.PreparedQuantity)
		}
	}
	o.updatedAt = now

	if o.IsFullyPrepared() && o.status != Prepared {
		o.changeStatus(Prepared, actor, now)
	}
	return nil
}

// IsFullyPrepared reports whether every line has been fully picked.
func (o *Order) IsFullyPrepared() bool {
	for _, l := range o.lines {
		if !l.IsFullyPrepared() {
			return false
		}
	}
	return true
}

// MarkReadyToShip moves a Prepared order to ReadyToShip. Staff only.
func (o *Order) MarkReadyToShip(actor kernel.Actor, now time.Time) error {
	if !actor.Staff {
		return errs.NewForbiddenError("mark order ready to ship", actor.UserID)
	}

	next, err := o.status.ReadyToShip()
	if err != nil {
		return err
	}

	o.changeStatus(next, actor, now)
	return nil
}

// Ship moves a Paid, Prepared or ReadyToShip order to Shipped. Staff only.
func (o *Order) Ship(actor kernel.Actor, now time.Time) error {
	if !actor.Staff {
		return errs.NewForbiddenError("ship order", actor.UserID)
	}

	next, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.changeStatus(next, actor, now)
	return nil
}

// Cancel moves a Pending or Paid order to Cancelled. The owner or staff may
// cancel. The caller is responsible for releasing the reserved stock.
func (o *Order) Cancel(actor kernel.Actor, now time.Time) error {
	if !actor.CanAccess(o.customer.ID) {
		return errs.NewForbiddenError("cancel order", actor.UserID)
	}

	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.changeStatus(next, actor, now)
	return nil
}

// OverrideStatus sets any valid status directly. Staff only. Cancelled can
// neither be entered nor left this way, since only Cancel releases stock.
func (o *Order) OverrideStatus(status Status, actor kernel.Actor, now time.Time) error {
	if !actor.Staff {
		return errs.NewForbiddenError("set order status", actor.UserID)
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if status != o.status && (status == Cancelled || o.status == Cancelled) {
		return NewInvalidTransitionError(o.status, status)
	}

	o.updatedAt = now
	if status != o.status {
		o.changeStatus(status, actor, now)
	}
	return nil
}

// AdvanceVersion is called by the repository after a successful
// compare-and-set update.
func (o *Order) AdvanceVersion() {
	o.version++
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) changeStatus(next Status, actor kernel.Actor, now time.Time) {
	prev := o.status
	o.status = next
	o.updatedAt = now
	o.record(StatusChanged{
		OrderID:   o.id,
		From:      prev.String(),
		To:        next.String(),
		ActorID:   actor.UserID,
		ChangedAt: now,
	})
}

func (o *Order) record(e kernel.DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.ID.Validate(); err != nil {
		return err
	}
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		customer.Name = customer.ID.String()
	}
	o.customer = customer
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("lines", ErrOrderHasNoLines)
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("line: %w", err)
		}
	}
	o.lines = slices.Clone(lines)
	return nil
}
