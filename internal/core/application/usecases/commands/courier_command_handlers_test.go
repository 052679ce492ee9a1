package commands_test

import (
	"testing"

	"farmadelivery/internal/core/application/usecases/commands"
	"farmadelivery/internal/core/domain/model/courier"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCourierCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "  Martín Gómez ", courier.Bicycle,
		newCoordinates(t, -34.6037, -58.3816))
	require.NoError(t, err)
	assert.Equal(t, "Martín Gómez", cmd.Name())

	uow := newMockUoW()
	uow.expectCommitted()
	uow.couriers.On("Add", mock.Anything, mock.MatchedBy(func(c *courier.Courier) bool {
		return c.ID().IsEqual(cmd.CourierID()) && c.TestLocation() != nil && c.Location() == nil
	})).Return(nil).Once()

	h := commands.NewCreateCourierCommandHandler(MockCourierUoWFactory{uow: uow})
	require.NoError(t, h.Handle(ctx, cmd))
	uow.assertAll(t)
}

func TestNewCreateCourierCommand_Invalid(t *testing.T) {
	_, err := commands.NewCreateCourierCommand(kernel.UUID{}, " ", courier.Vehicle("SKATEBOARD"), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, courier.ErrNameIsRequired)
}

func TestUpdateCourierLocationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c, err := courier.NewCourier(kernel.NewUUID(), "Martín Gómez", courier.Motorcycle, nil)
	require.NoError(t, err)
	require.False(t, c.IsAvailable(now))

	cmd, err := commands.NewUpdateCourierLocationCommand(newActor(t, c.ID(), kernel.RoleCourier), -34.6037, -58.3816)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectCommitted()
	uow.couriers.On("Get", mock.Anything, c.ID()).Return(c, nil).Once()
	uow.couriers.On("Update", mock.Anything, c).Return(nil).Once()

	h := commands.NewUpdateCourierLocationCommandHandler(MockCourierUoWFactory{uow: uow}, fixedClock{at: now})
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, c.IsAvailable(now))
	require.NotNil(t, c.Location())
	assert.InDelta(t, -34.6037, c.Location().Lat(), 1e-9)
	uow.assertAll(t)
}

func TestNewUpdateCourierLocationCommand(t *testing.T) {
	courierActor := newActor(t, kernel.NewUUID(), kernel.RoleCourier)

	_, err := commands.NewUpdateCourierLocationCommand(courierActor, 91, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewUpdateCourierLocationCommand(newActor(t, kernel.NewUUID(), kernel.RoleCustomer), 0, 0)
	require.ErrorIs(t, err, errs.ErrForbidden)
}
