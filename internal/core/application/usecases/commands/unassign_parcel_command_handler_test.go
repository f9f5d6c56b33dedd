package commands_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// bookedSchedule returns a morning pickup bucket with the parcel assigned.
func bookedSchedule(t *testing.T, p *parcel.Parcel) *vehicle.Schedule {
	t.Helper()

	transport := pickupVehicle(t, 10, 100)
	schedule, err := vehicle.NewSchedule(kernel.NewUUID(), transport.ID(),
		time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), vehicle.TimeSlotMorning, vehicle.ScheduleTypePickup)
	require.NoError(t, err)
	require.NoError(t, schedule.Assign(transport, p.ID(), p.Size()))
	return schedule
}

func TestUnassignParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := placedParcel(t, parcel.SubmittingPickup, parcel.PaymentOnline, parcel.PayerSender)
	schedule := bookedSchedule(t, aggregate)

	cmd, err := commands.NewUnassignParcelCommand(schedule.ID(), aggregate.ID())
	require.NoError(t, err)

	scheduleRepo := new(MockScheduleRepository)
	scheduleRepo.On("Get", ctx, schedule.ID()).Return(schedule, nil).Once()
	scheduleRepo.On("Update", ctx, schedule).Return(nil).Once()

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	uow := scheduleUoW(parcelRepo, new(MockVehicleRepository), scheduleRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUnassignParcelCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.False(t, schedule.Contains(aggregate.ID()))
	assert.Zero(t, schedule.Totals().Volume)
	assert.Zero(t, schedule.Totals().Weight)

	scheduleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUnassignParcelCommandHandler_Handle_ParcelNotInBucket(t *testing.T) {
	ctx := t.Context()
	booked := placedParcel(t, parcel.SubmittingPickup, parcel.PaymentOnline, parcel.PayerSender)
	other := placedParcel(t, parcel.SubmittingPickup, parcel.PaymentOnline, parcel.PayerSender)
	schedule := bookedSchedule(t, booked)

	cmd, err := commands.NewUnassignParcelCommand(schedule.ID(), other.ID())
	require.NoError(t, err)

	scheduleRepo := new(MockScheduleRepository)
	scheduleRepo.On("Get", ctx, schedule.ID()).Return(schedule, nil).Once()

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Get", ctx, other.ID()).Return(other, nil).Once()

	uow := scheduleUoW(parcelRepo, new(MockVehicleRepository), scheduleRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockScheduleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUnassignParcelCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.True(t, schedule.Contains(booked.ID()))
	scheduleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
