package queries

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists orders newest first. Staff see every order, other
// actors only their own. An optional status narrows the result.
//
// Example:
//
//	query, err := NewListOrdersQuery(actor, nil)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actor  kernel.Actor
	status *order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor kernel.Actor, status *order.Status) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	return ListOrdersQuery{actor: actor, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Actor() kernel.Actor   { return q.actor }
func (q ListOrdersQuery) Status() *order.Status { return q.status }

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
