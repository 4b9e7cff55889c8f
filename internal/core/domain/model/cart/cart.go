package cart

import (
	"errors"
	"slices"
	"time"

	"shop/internal/core/domain/model/catalog"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")
	ErrCartIsEmpty          = errors.New("cart is empty")
	ErrProductMismatch      = errors.New("line belongs to a different product")
)

// Cart is the aggregate root for a user's pre-purchase lines.
type Cart struct {
	id        kernel.UUID
	userID    kernel.UUID
	lines     []*Line
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewCart creates an empty cart for userID.
func NewCart(id, userID kernel.UUID, now time.Time) (*Cart, error) {
	return RestoreCart(id, userID, nil, now, now)
}

// RestoreCart rebuilds a cart and its lines from storage.
func RestoreCart(id, userID kernel.UUID, lines []*Line, createdAt, updatedAt time.Time) (*Cart, error) {
	c := &Cart{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		setID(&c.id, id),
		setID(&c.userID, userID),
		c.setLines(lines),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) ID() kernel.UUID      { return c.id }
func (c *Cart) UserID() kernel.UUID  { return c.userID }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }
func (c *Cart) IsEmpty() bool        { return len(c.lines) == 0 }

// Lines returns the cart lines ordered by product id.
func (c *Cart) Lines() []*Line {
	out := slices.Clone(c.lines)
	slices.SortFunc(out, func(a, b *Line) int {
		return a.productID.Compare(b.productID)
	})
	return out
}

// Line looks up a line by its id.
func (c *Cart) Line(lineID kernel.UUID) (*Line, bool) {
	i := c.indexOf(func(l *Line) bool { return l.id.IsEqual(lineID) })
	if i < 0 {
		return nil, false
	}
	return c.lines[i], true
}

// AddOrReplaceLine puts quantity units of product into the cart. If the
// product already has a line its quantity is replaced.
func (c *Cart) AddOrReplaceLine(product *catalog.Product, quantity int, now time.Time) (*Line, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := product.CheckAvailable(quantity); err != nil {
		return nil, err
	}

	if i := c.indexOf(func(l *Line) bool { return l.productID.IsEqual(product.ID()) }); i >= 0 {
		c.lines[i].quantity = quantity
		c.updatedAt = now
		return c.lines[i], nil
	}

	line, err := newLine(product.ID(), quantity, now)
	if err != nil {
		return nil, err
	}
	c.lines = append(c.lines, line)
	c.updatedAt = now
	return line, nil
}

// UpdateQuantity changes the quantity of an existing line. product must be
// the line's product; it is used for the active and stock checks.
func (c *Cart) UpdateQuantity(lineID kernel.UUID, product *catalog.Product, quantity int, now time.Time) (*Line, error) {
	line, ok := c.Line(lineID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("lineID", lineID)
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if !product.ID().IsEqual(line.productID) {
		return nil, ErrProductMismatch
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := product.CheckAvailable(quantity); err != nil {
		return nil, err
	}

	line.quantity = quantity
	c.updatedAt = now
	return line, nil
}

// RemoveLine deletes a line from the cart.
func (c *Cart) RemoveLine(lineID kernel.UUID, now time.Time) error {
	i := c.indexOf(func(l *Line) bool { return l.id.IsEqual(lineID) })
	if i < 0 {
		return errs.NewObjectNotFoundError("lineID", lineID)
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	c.updatedAt = now
	return nil
}

// Clear removes every line. Clearing an empty cart is a no-op.
func (c *Cart) Clear(now time.Time) {
	if len(c.lines) == 0 {
		return
	}
	c.lines = nil
	c.updatedAt = now
}

func (c *Cart) indexOf(match func(*Line) bool) int {
	return slices.IndexFunc(c.lines, match)
}

func (c *Cart) setLines(lines []*Line) error {
	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, dup := seen[l.productID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", errors.New("duplicate product "+l.productID.String()))
		}
		seen[l.productID] = struct{}{}
	}
	c.lines = slices.Clone(lines)
	return nil
}
