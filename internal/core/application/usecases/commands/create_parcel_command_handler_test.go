package commands_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placementCommand(t *testing.T, fromBranch, toBranch string) commands.CreateParcelCommand {
	t.Helper()

	cmd, err := commands.NewCreateParcelCommand(
		kernel.NewUUID(),
		"documents",
		kernel.SizeSmall,
		parcel.SubmittingPickup,
		parcel.ReceivingDoorstep,
		parcel.ShippingStandard,
		commands.ContactDetails{Name: "Aung Kyaw", Phone: "+95911111111", Address: "12 Hledan Rd, Yangon"},
		commands.ContactDetails{Name: "Su Myat", Phone: "+95922222222", Address: "7 Main St, Mandalay"},
		fromBranch,
		toBranch,
		parcel.PaymentOnline,
		parcel.PayerSender,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := placementCommand(t, "B001", "B003")
	tariff := services.NewTariff(handlerTestGraph())

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory, tariff)
	trackingNo, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NotEmpty(t, trackingNo)

	added := repo.Calls[0].Arguments.Get(1).(*parcel.Parcel)
	assert.Equal(t, parcel.StatusOrderPlaced, added.Status())
	assert.Equal(t, trackingNo, added.TrackingNo())
	// small rate over 115.5 km, priced by the tariff
	assert.Equal(t, int64(1155), added.Payment().Amount())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockParcelUoWFactory)
	tariff := services.NewTariff(handlerTestGraph())

	h := commands.NewCreateParcelCommandHandler(factory, tariff)
	_, err := h.Handle(ctx, commands.CreateParcelCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateParcelCommandIsNotConstructed)
}

func TestCreateParcelCommandHandler_Handle_UnroutableBranchPair(t *testing.T) {
	ctx := t.Context()
	cmd := placementCommand(t, "B001", "B009")
	tariff := services.NewTariff(handlerTestGraph())

	// quote fails before any transaction is opened
	factory := new(MockParcelUoWFactory)

	h := commands.NewCreateParcelCommandHandler(factory, tariff)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrRouteNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateParcelCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := placementCommand(t, "B001", "B003")
	tariff := services.NewTariff(handlerTestGraph())

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory, tariff)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateParcelCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := placementCommand(t, "B001", "B003")
	tariff := services.NewTariff(handlerTestGraph())

	repo := new(MockParcelRepository)
	repo.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(errors.New("add error")).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory, tariff)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}
