package commands_test

import (
	"errors"
	"testing"

	"farmadelivery/internal/core/application/usecases/commands"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/core/domain/model/order"
	"farmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPrepareOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	aggregate := orderIn(t, order.Pending, pharmacyID, nil, nil)

	uow := newMockUoW()
	uow.expectCommitted()
	uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.orders.On("Update", mock.Anything, aggregate).Return(nil).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(events []order.StatusChangedEvent) bool {
		return len(events) == 1 && events[0].From == order.Pending && events[0].To == order.Preparing
	})).Return().Once()

	cmd, err := commands.NewPrepareOrderCommand(newActor(t, pharmacyID, kernel.RolePharmacy), aggregate.ID())
	require.NoError(t, err)

	h := commands.NewPrepareOrderCommandHandler(MockUoWFactory{uow: uow}, dispatcher, fixedClock{at: now})
	prepared, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Preparing, prepared.Status())
	assert.Empty(t, prepared.DomainEvents())
	uow.assertAll(t)
	dispatcher.AssertExpectations(t)
}

func TestPrepareOrderCommandHandler_Handle_OtherPharmacyIsForbidden(t *testing.T) {
	ctx := t.Context()
	aggregate := orderIn(t, order.Pending, kernel.NewUUID(), nil, nil)

	uow := newMockUoW()
	uow.expectRolledBack()
	uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	cmd, err := commands.NewPrepareOrderCommand(newActor(t, kernel.NewUUID(), kernel.RolePharmacy), aggregate.ID())
	require.NoError(t, err)

	h := commands.NewPrepareOrderCommandHandler(MockUoWFactory{uow: uow}, new(MockDispatcher), fixedClock{at: now})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.Pending, aggregate.Status())
	uow.assertAll(t)
}

func TestPrepareOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	uow := newMockUoW()
	uow.expectRolledBack()
	uow.orders.On("Get", mock.Anything, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once()

	cmd, err := commands.NewPrepareOrderCommand(newActor(t, kernel.NewUUID(), kernel.RolePharmacy), orderID)
	require.NoError(t, err)

	h := commands.NewPrepareOrderCommandHandler(MockUoWFactory{uow: uow}, new(MockDispatcher), fixedClock{at: now})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestPrepareOrderCommandHandler_Handle_CommitErrorDoesNotNotify(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	aggregate := orderIn(t, order.Pending, pharmacyID, nil, nil)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(errors.New("connection reset")).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.orders.On("Update", mock.Anything, aggregate).Return(nil).Once()

	dispatcher := new(MockDispatcher)
	cmd, err := commands.NewPrepareOrderCommand(newActor(t, pharmacyID, kernel.RolePharmacy), aggregate.ID())
	require.NoError(t, err)

	h := commands.NewPrepareOrderCommandHandler(MockUoWFactory{uow: uow}, dispatcher, fixedClock{at: now})
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestMarkOrderReadyCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	aggregate := orderIn(t, order.Pending, pharmacyID, nil, nil)

	uow := newMockUoW()
	uow.expectRolledBack()
	uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	cmd, err := commands.NewMarkOrderReadyCommand(newActor(t, pharmacyID, kernel.RolePharmacy), aggregate.ID())
	require.NoError(t, err)

	h := commands.NewMarkOrderReadyCommandHandler(MockUoWFactory{uow: uow}, new(MockDispatcher), fixedClock{at: now})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.assertAll(t)
}

func TestMarkOrderReadyCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pharmacyID := kernel.NewUUID()
	aggregate := orderIn(t, order.Preparing, pharmacyID, nil, nil)

	uow := newMockUoW()
	uow.expectCommitted()
	uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.orders.On("Update", mock.Anything, aggregate).Return(nil).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return().Once()

	cmd, err := commands.NewMarkOrderReadyCommand(newActor(t, pharmacyID, kernel.RolePharmacy), aggregate.ID())
	require.NoError(t, err)

	h := commands.NewMarkOrderReadyCommandHandler(MockUoWFactory{uow: uow}, dispatcher, fixedClock{at: now})
	ready, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Ready, ready.Status())
	dispatcher.AssertExpectations(t)
}
