package commands_test

import (
	"errors"
	"testing"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPayOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	o := placedOrder(t, owner, 2, newProduct(t, "Widget", "9.99", 10))

	cmd, err := commands.NewPayOrderCommand(owner, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPayOrderCommandHandler(factory)
	paid, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Paid, paid.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPayOrderCommandHandler_Handle_ForeignOrderIsForbidden(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	stranger := newActor(t, false)
	o := placedOrder(t, owner, 1, newProduct(t, "Widget", "9.99", 10))

	cmd, err := commands.NewPayOrderCommand(stranger, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPayOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.Pending, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPayOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	orderID := kernel.NewUUID()

	cmd, err := commands.NewPayOrderCommand(owner, orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPayOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestPayOrderCommandHandler_Handle_StaleVersion(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	o := placedOrder(t, owner, 1, newProduct(t, "Widget", "9.99", 10))

	cmd, err := commands.NewPayOrderCommand(owner, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(errs.NewVersionIsInvalidError("order")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPayOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestPayOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	o := placedOrder(t, owner, 1, newProduct(t, "Widget", "9.99", 10))

	cmd, err := commands.NewPayOrderCommand(owner, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewPayOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
}

func TestRecordPreparationCommandHandler_Handle_CompletesPreparation(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	staff := newActor(t, true)
	o := placedOrder(t, owner, 3, newProduct(t, "Widget", "9.99", 10), newProduct(t, "Gadget", "1.00", 10))
	require.NoError(t, o.Pay(owner, fixedNow))

	lines := o.Lines()
	updates := []order.PreparationUpdate{
		{LineID: lines[0].ID(), PreparedQuantity: 3},
		{LineID: lines[1].ID(), PreparedQuantity: 7}, // clamped to 3
	}
	cmd, err := commands.NewRecordPreparationCommand(staff, o.ID(), updates)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRecordPreparationCommandHandler(factory)
	prepared, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Prepared, prepared.Status())
	for _, l := range prepared.Lines() {
		assert.Equal(t, 3, l.PreparedQuantity())
	}
}

func TestRecordPreparationCommandHandler_Handle_CustomerIsForbidden(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	o := placedOrder(t, owner, 1, newProduct(t, "Widget", "9.99", 10))
	require.NoError(t, o.Pay(owner, fixedNow))

	cmd, err := commands.NewRecordPreparationCommand(owner, o.ID(), []order.PreparationUpdate{
		{LineID: o.Lines()[0].ID(), PreparedQuantity: 1},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRecordPreparationCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestMarkReadyToShipCommandHandler_Handle_RequiresPrepared(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	staff := newActor(t, true)
	o := placedOrder(t, owner, 1, newProduct(t, "Widget", "9.99", 10))
	require.NoError(t, o.Pay(owner, fixedNow))

	cmd, err := commands.NewMarkReadyToShipCommand(staff, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewMarkReadyToShipCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Paid, o.Status())
}

func TestShipOrderCommandHandler_Handle_FromPaid(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	staff := newActor(t, true)
	o := placedOrder(t, owner, 1, newProduct(t, "Widget", "9.99", 10))
	require.NoError(t, o.Pay(owner, fixedNow))

	cmd, err := commands.NewShipOrderCommand(staff, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewShipOrderCommandHandler(factory)
	shipped, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Shipped, shipped.Status())
}

func TestCancelOrderCommandHandler_Handle_ReleasesStockInProductOrder(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	widget := newProduct(t, "Widget", "9.99", 10)
	gadget := newProduct(t, "Gadget", "1.00", 10)
	o := placedOrder(t, owner, 2, widget, gadget)

	first, second := widget, gadget
	if gadget.ID().Compare(widget.ID()) < 0 {
		first, second = gadget, widget
	}

	cmd, err := commands.NewCancelOrderCommand(owner, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockInventoryLedger)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("Release", ctx, first.ID(), 2).Return(nil).Once(),
		ledger.On("Release", ctx, second.ID(), 2).Return(nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOrderCommandHandler(factory)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	ledger.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_ShippedOrderKeepsStock(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	staff := newActor(t, true)
	o := placedOrder(t, owner, 1, newProduct(t, "Widget", "9.99", 10))
	require.NoError(t, o.OverrideStatus(order.Shipped, staff, fixedNow))

	cmd, err := commands.NewCancelOrderCommand(staff, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.Shipped, transitionErr.Current)
	uow.AssertNotCalled(t, "InventoryLedger")
}

func TestCancelOrderCommandHandler_Handle_ReleaseError(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	widget := newProduct(t, "Widget", "9.99", 10)
	o := placedOrder(t, owner, 1, widget)

	cmd, err := commands.NewCancelOrderCommand(owner, o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockInventoryLedger)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("Release", ctx, widget.ID(), 1).Return(errs.NewObjectNotFoundError("product", widget.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOrderCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_OverrideCannotReopenForSecondRelease(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	staff := newActor(t, true)
	widget := newProduct(t, "Widget", "9.99", 10)
	o := placedOrder(t, owner, 3, widget)

	orderRepo := new(MockOrderRepository)
	ledger := new(MockInventoryLedger)

	cancelUoW := new(MockUoW)
	cancelFactory := new(MockOrderUoWFactory)
	mock.InOrder(
		cancelFactory.On("Create").Return(cancelUoW).Once(),
		cancelUoW.On("Begin", ctx).Return(nil).Once(),
		cancelUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		cancelUoW.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("Release", ctx, widget.ID(), 3).Return(nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		cancelUoW.On("Commit", ctx).Return(nil).Once(),
		cancelUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	cancel := commands.NewCancelOrderCommandHandler(cancelFactory)
	cmd, err := commands.NewCancelOrderCommand(owner, o.ID())
	require.NoError(t, err)
	_, err = cancel.Handle(ctx, cmd)
	require.NoError(t, err)

	overrideUoW := new(MockUoW)
	overrideFactory := new(MockOrderUoWFactory)
	overrideFactory.On("Create").Return(overrideUoW).Once()
	overrideUoW.On("Begin", ctx).Return(nil).Once()
	overrideUoW.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	overrideUoW.On("Rollback", ctx).Return(nil).Once()

	reopen, err := commands.NewSetOrderStatusCommand(staff, o.ID(), order.Pending)
	require.NoError(t, err)
	_, err = commands.NewSetOrderStatusCommandHandler(overrideFactory).Handle(ctx, reopen)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	retryUoW := new(MockUoW)
	retryFactory := new(MockOrderUoWFactory)
	retryFactory.On("Create").Return(retryUoW).Once()
	retryUoW.On("Begin", ctx).Return(nil).Once()
	retryUoW.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	retryUoW.On("Rollback", ctx).Return(nil).Once()

	_, err = commands.NewCancelOrderCommandHandler(retryFactory).Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	assert.Equal(t, order.Cancelled, o.Status())
	ledger.AssertNumberOfCalls(t, "Release", 1)
	orderRepo.AssertNumberOfCalls(t, "Update", 1)
	overrideUoW.AssertNotCalled(t, "Commit", mock.Anything)
	retryUoW.AssertNotCalled(t, "InventoryLedger")
}

func TestSetOrderStatusCommandHandler_Handle_StaffOverride(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, false)
	staff := newActor(t, true)
	o := placedOrder(t, owner, 1, newProduct(t, "Widget", "9.99", 10))

	cmd, err := commands.NewSetOrderStatusCommand(staff, o.ID(), order.ReadyToShip)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewSetOrderStatusCommandHandler(factory)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ReadyToShip, updated.Status())
}

func TestSetOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewSetOrderStatusCommandHandler(factory)

	_, err := handler.Handle(t.Context(), commands.SetOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrSetOrderStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
