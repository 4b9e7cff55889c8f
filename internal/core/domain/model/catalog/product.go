package catalog

import (
	"errors"
	"fmt"
	"strings"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")
	ErrProductNotActive        = errors.New("product is not active")
)

// Product is a sellable item with a unit price and an available stock count.
type Product struct {
	id     kernel.UUID
	name   string
	price  kernel.Money
	stock  int
	active bool

	guard guard.ConstructorGuard
}

// NewProduct creates an active product.
func NewProduct(id kernel.UUID, name string, price kernel.Money, stock int) (*Product, error) {
	return RestoreProduct(id, name, price, stock, true)
}

// RestoreProduct rebuilds a product from storage.
func RestoreProduct(id kernel.UUID, name string, price kernel.Money, stock int, active bool) (*Product, error) {
	p := &Product{active: active, price: price, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID     { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Price() kernel.Money { return p.price }
func (p *Product) Stock() int          { return p.stock }
func (p *Product) IsActive() bool      { return p.active }

// CheckAvailable is the advisory stock check made when a cart line is added or
// changed. It does not reserve anything.
func (p *Product) CheckAvailable(quantity int) error {
	if !p.active {
		return fmt.Errorf("%w: %s", ErrProductNotActive, p.name)
	}
	if quantity > p.stock {
		return NewInsufficientStockError(p.id, p.name, quantity, p.stock)
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
