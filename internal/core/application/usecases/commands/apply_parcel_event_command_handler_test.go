package commands_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyParcelEventCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := placedParcel(t, parcel.SubmittingBranch, parcel.PaymentOnline, parcel.PayerSender)
	cmd, err := commands.NewApplyParcelEventCommand(aggregate.ID(), parcel.EventArrivedAtHub)
	require.NoError(t, err)

	repo := new(MockParcelRepository)
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", ctx, aggregate).Return(nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishParcelStatusChanged", ctx, mock.MatchedBy(func(event ports.ParcelStatusChanged) bool {
		return event.OldStatus == "OrderPlaced" && event.NewStatus == "ArrivedAtDistributionCenter" &&
			event.TrackingNo == aggregate.TrackingNo()
	})).Return(nil).Once()

	cache := new(MockStatusCache)
	cache.On("Invalidate", ctx, aggregate.TrackingNo()).Return(nil).Once()

	h := commands.NewApplyParcelEventCommandHandler(factory, publisher, cache, discardLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusArrivedAtDistributionCenter, result.NewStatus)
	assert.Equal(t, parcel.StatusArrivedAtDistributionCenter, aggregate.Status())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestApplyParcelEventCommandHandler_Handle_PublishFailureDoesNotFailTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := placedParcel(t, parcel.SubmittingBranch, parcel.PaymentOnline, parcel.PayerSender)
	cmd, err := commands.NewApplyParcelEventCommand(aggregate.ID(), parcel.EventArrivedAtHub)
	require.NoError(t, err)

	repo := new(MockParcelRepository)
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", ctx, aggregate).Return(nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishParcelStatusChanged", ctx, mock.Anything).
		Return(errors.New("broker down")).Once()

	cache := new(MockStatusCache)
	cache.On("Invalidate", ctx, aggregate.TrackingNo()).
		Return(errors.New("cache down")).Once()

	h := commands.NewApplyParcelEventCommandHandler(factory, publisher, cache, discardLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusArrivedAtDistributionCenter, result.NewStatus)
}

func TestApplyParcelEventCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := placedParcel(t, parcel.SubmittingBranch, parcel.PaymentOnline, parcel.PayerSender)
	cmd, err := commands.NewApplyParcelEventCommand(aggregate.ID(), parcel.EventDelivered)
	require.NoError(t, err)

	repo := new(MockParcelRepository)
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	cache := new(MockStatusCache)

	h := commands.NewApplyParcelEventCommandHandler(factory, publisher, cache, discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, parcel.StatusOrderPlaced, aggregate.Status())

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "PublishParcelStatusChanged", mock.Anything, mock.Anything)
}

func TestApplyParcelEventCommandHandler_Handle_ParcelNotFound(t *testing.T) {
	ctx := t.Context()
	parcelID := kernel.NewUUID()
	cmd, err := commands.NewApplyParcelEventCommand(parcelID, parcel.EventArrivedAtHub)
	require.NoError(t, err)

	repo := new(MockParcelRepository)
	repo.On("Get", ctx, parcelID).Return(nil, errs.NewObjectNotFoundError("parcelId", parcelID)).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyParcelEventCommandHandler(factory, new(MockEventPublisher), new(MockStatusCache), discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
