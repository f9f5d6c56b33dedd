package commands_test

import (
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmParcelPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := placedParcel(t, parcel.SubmittingBranch, parcel.PaymentPhysical, parcel.PayerSender)
	require.Equal(t, parcel.PaymentPending, aggregate.Payment().Status())

	cmd, err := commands.NewConfirmParcelPaymentCommand(aggregate.ID())
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

	h := commands.NewConfirmParcelPaymentCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, parcel.PaymentPaid, aggregate.Payment().Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmParcelPaymentCommandHandler_Handle_RejectsOnlinePayment(t *testing.T) {
	ctx := t.Context()
	aggregate := placedParcel(t, parcel.SubmittingBranch, parcel.PaymentOnline, parcel.PayerSender)

	cmd, err := commands.NewConfirmParcelPaymentCommand(aggregate.ID())
	require.NoError(t, err)

	repo := new(MockParcelRepository)
	repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmParcelPaymentCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestConfirmParcelPaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockParcelUoWFactory)

	h := commands.NewConfirmParcelPaymentCommandHandler(factory)
	err := h.Handle(ctx, commands.ConfirmParcelPaymentCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrConfirmParcelPaymentCommandIsNotConstructed)
}
