package commands_test

import (
	"testing"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddCartLineCommand_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()
	productID := kernel.NewUUID()

	cmd, err := commands.NewAddCartLineCommand(userID, productID, 3)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, userID, cmd.UserID())
	assert.Equal(t, productID, cmd.ProductID())
	assert.Equal(t, 3, cmd.Quantity())
}

func TestNewAddCartLineCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewAddCartLineCommand(kernel.NewUUID(), kernel.NewUUID(), 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewAddCartLineCommand(kernel.UUID{}, kernel.NewUUID(), 1)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewUpdateCartLineCommand_InvalidQuantity(t *testing.T) {
	_, err := commands.NewUpdateCartLineCommand(kernel.NewUUID(), kernel.NewUUID(), -1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewRemoveCartLineCommand_InvalidLineID(t *testing.T) {
	_, err := commands.NewRemoveCartLineCommand(kernel.NewUUID(), kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewClearCartCommand(t *testing.T) {
	userID := kernel.NewUUID()
	cmd, err := commands.NewClearCartCommand(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, cmd.UserID())

	_, err = commands.NewClearCartCommand(kernel.UUID{})
	require.Error(t, err)
}

func TestNewEnsureCartCommand_InvalidUserID(t *testing.T) {
	_, err := commands.NewEnsureCartCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCheckoutCommand(t *testing.T) {
	actor := newActor(t, false)
	cmd, err := commands.NewCheckoutCommand(actor)
	require.NoError(t, err)
	assert.Equal(t, actor, cmd.Actor())

	_, err = commands.NewCheckoutCommand(kernel.Actor{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestOrderCommands_RequireActorAndOrder(t *testing.T) {
	actor := newActor(t, true)
	orderID := kernel.NewUUID()

	pay, err := commands.NewPayOrderCommand(actor, orderID)
	require.NoError(t, err)
	assert.Equal(t, actor, pay.Actor())
	assert.Equal(t, orderID, pay.OrderID())

	_, err = commands.NewShipOrderCommand(actor, kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewCancelOrderCommand(kernel.Actor{}, orderID)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewMarkReadyToShipCommand(actor, orderID)
	require.NoError(t, err)
}

func TestOrderCommands_ZeroValueFailsValidation(t *testing.T) {
	assert.ErrorIs(t, commands.PayOrderCommand{}.Validate(), commands.ErrPayOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.ShipOrderCommand{}.Validate(), commands.ErrShipOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.CancelOrderCommand{}.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.MarkReadyToShipCommand{}.Validate(), commands.ErrMarkReadyToShipCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RecordPreparationCommand{}.Validate(), commands.ErrRecordPreparationCommandIsNotConstructed)
	assert.ErrorIs(t, commands.SetOrderStatusCommand{}.Validate(), commands.ErrSetOrderStatusCommandIsNotConstructed)
}

func TestNewRecordPreparationCommand(t *testing.T) {
	actor := newActor(t, true)
	orderID := kernel.NewUUID()
	updates := []order.PreparationUpdate{{LineID: kernel.NewUUID(), PreparedQuantity: 2}}

	cmd, err := commands.NewRecordPreparationCommand(actor, orderID, updates)
	require.NoError(t, err)
	assert.Equal(t, updates, cmd.Updates())

	_, err = commands.NewRecordPreparationCommand(actor, orderID, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRecordPreparationCommand(actor, orderID, []order.PreparationUpdate{{PreparedQuantity: 1}})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewSetOrderStatusCommand(t *testing.T) {
	actor := newActor(t, true)

	cmd, err := commands.NewSetOrderStatusCommand(actor, kernel.NewUUID(), order.Shipped)
	require.NoError(t, err)
	assert.Equal(t, order.Shipped, cmd.Status())

	_, err = commands.NewSetOrderStatusCommand(actor, kernel.NewUUID(), order.Status(99))
	require.Error(t, err)
}

func TestNewPublishOutboxCommand(t *testing.T) {
	cmd, err := commands.NewPublishOutboxCommand(50)
	require.NoError(t, err)
	assert.Equal(t, 50, cmd.BatchSize())

	_, err = commands.NewPublishOutboxCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
