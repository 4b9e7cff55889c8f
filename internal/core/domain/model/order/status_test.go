package order_test

import (
	"slices"
	"testing"

	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 6, int(order.Cancelled))
}

func TestStatus_StringAndParse(t *testing.T) {
	names := map[order.Status]string{
		order.Pending:     "pending",
		order.Paid:        "paid",
		order.Prepared:    "prepared",
		order.ReadyToShip: "ready_to_ship",
		order.Shipped:     "shipped",
		order.Cancelled:   "cancelled",
	}
	for status, name := range names {
		assert.Equal(t, name, status.String())
		parsed, err := order.ParseStatus(name)
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	assert.Equal(t, "unknown", order.Status(42).String())
	_, err := order.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.Statuses() {
		require.NoError(t, s.Validate())
	}
	for _, s := range []order.Status{order.Unknown, -1, 7, 100} {
		err := s.Validate()
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	}
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	cases := []struct {
		name    string
		do      transition
		allowed []order.Status
		target  order.Status
	}{
		{"pay", order.Status.Pay, []order.Status{order.Pending}, order.Paid},
		{"ready", order.Status.ReadyToShip, []order.Status{order.Prepared}, order.ReadyToShip},
		{"ship", order.Status.Ship, []order.Status{order.Paid, order.Prepared, order.ReadyToShip}, order.Shipped},
		{"cancel", order.Status.Cancel, []order.Status{order.Pending, order.Paid}, order.Cancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, from := range order.Statuses() {
				next, err := tc.do(from)
				if slices.Contains(tc.allowed, from) {
					require.NoError(t, err, "from %s", from)
					assert.Equal(t, tc.target, next)
					continue
				}

				require.ErrorIs(t, err, order.ErrInvalidTransition, "from %s", from)
				var transitionErr *order.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, from, transitionErr.Current)
				assert.Equal(t, tc.target, transitionErr.Requested)
				assert.Equal(t, from, next)
			}
		})
	}
}

func TestStatus_ValidatePreparation(t *testing.T) {
	require.NoError(t, order.Paid.ValidatePreparation())
	require.NoError(t, order.Prepared.ValidatePreparation())
	require.ErrorIs(t, order.Pending.ValidatePreparation(), order.ErrInvalidTransition)
	require.ErrorIs(t, order.Shipped.ValidatePreparation(), order.ErrInvalidTransition)
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := order.NewInvalidTransitionError(order.Pending, order.Shipped)
	assert.Equal(t, "invalid status transition: cannot move from pending to shipped", err.Error())
}
