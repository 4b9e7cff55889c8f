package queries

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrGetCartQueryIsNotConstructed = errors.New(
		"GetCartQuery must be created via NewGetCartQuery constructor",
	)
)

// GetCartQuery reads the cart view of one user. The cart must exist; callers
// run EnsureCartCommand first.
type GetCartQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCartQuery(userID kernel.UUID) (GetCartQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) UserID() kernel.UUID { return q.userID }

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}
