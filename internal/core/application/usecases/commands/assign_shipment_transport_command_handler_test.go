package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func shipmentUoW(parcelRepo *MockParcelRepository, vehicleRepo *MockVehicleRepository, shipmentRepo *MockShipmentRepository) *MockShipmentUoW {
	uow := new(MockShipmentUoW)
	uow.On("ParcelRepository").Return(parcelRepo).Maybe()
	uow.On("VehicleRepository").Return(vehicleRepo).Maybe()
	uow.On("ShipmentRepository").Return(shipmentRepo).Maybe()
	return uow
}

func TestAssignShipmentTransportCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate, _ := pendingShipment(t, 2)
	transport := shipmentVehicle(t)

	cmd, err := commands.NewAssignShipmentTransportCommand(aggregate.ID(), transport.ID(), "driver-007")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	shipmentRepo.On("GetActiveByDriver", ctx, "driver-007").
		Return(nil, errs.NewObjectNotFoundError("driver", "driver-007")).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()

	vehicleRepo := new(MockVehicleRepository)
	vehicleRepo.On("Get", ctx, transport.ID()).Return(transport, nil).Once()
	vehicleRepo.On("Update", ctx, transport).Return(nil).Once()

	uow := shipmentUoW(new(MockParcelRepository), vehicleRepo, shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignShipmentTransportCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.StatusVerified, aggregate.Status())
	assert.Equal(t, "driver-007", aggregate.Driver())
	require.NotNil(t, aggregate.Vehicle())
	assert.True(t, aggregate.Vehicle().IsEqual(transport.ID()))
	assert.False(t, transport.IsAvailable())

	shipmentRepo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignShipmentTransportCommandHandler_Handle_DriverAlreadyEngaged(t *testing.T) {
	ctx := t.Context()
	aggregate, _ := pendingShipment(t, 1)
	other, _ := pendingShipment(t, 1)
	transport := shipmentVehicle(t)

	cmd, err := commands.NewAssignShipmentTransportCommand(aggregate.ID(), transport.ID(), "driver-007")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	shipmentRepo.On("GetActiveByDriver", ctx, "driver-007").Return(other, nil).Once()

	vehicleRepo := new(MockVehicleRepository)

	uow := shipmentUoW(new(MockParcelRepository), vehicleRepo, shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignShipmentTransportCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDriverUnavailable)
	assert.Equal(t, shipment.StatusPending, aggregate.Status())
	vehicleRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignShipmentTransportCommandHandler_Handle_VehicleAlreadyClaimed(t *testing.T) {
	ctx := t.Context()
	aggregate, _ := pendingShipment(t, 1)
	claimer, _ := pendingShipment(t, 1)
	transport := shipmentVehicle(t)
	require.NoError(t, claimer.AssignVehicle(transport))

	cmd, err := commands.NewAssignShipmentTransportCommand(aggregate.ID(), transport.ID(), "driver-007")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	shipmentRepo.On("GetActiveByDriver", ctx, "driver-007").
		Return(nil, errs.NewObjectNotFoundError("driver", "driver-007")).Once()

	vehicleRepo := new(MockVehicleRepository)
	vehicleRepo.On("Get", ctx, transport.ID()).Return(transport, nil).Once()

	uow := shipmentUoW(new(MockParcelRepository), vehicleRepo, shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignShipmentTransportCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrVehicleUnavailable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
