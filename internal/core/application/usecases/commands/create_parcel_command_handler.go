package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/services"
)

// CreateParcelCommandHandler handles parcel order placement: it quotes the
// route, opens the payment record, and persists the parcel in OrderPlaced.
type CreateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	tariff     *services.Tariff
}

// NewCreateParcelCommandHandler creates a handler for parcel placement.
func NewCreateParcelCommandHandler(uowFactory ParcelUoWFactory, tariff *services.Tariff) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
		tariff:     tariff,
	}
}

// Handle processes the placement command and returns the generated tracking
// number. The quote runs before the transaction: an unroutable branch pair
// fails the whole placement with a RouteNotFoundError.
func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	quote, err := h.tariff.QuoteRoute(cmd.Size(), cmd.FromBranch(), cmd.ToBranch(), cmd.ShippingMethod())
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()

	payment, err := parcel.NewPayment(kernel.NewUUID(), cmd.PaymentMethod(), cmd.PaidBy(), quote.Amount, now)
	if err != nil {
		return "", err
	}

	sender, err := parcel.NewContact(cmd.Sender().Name, cmd.Sender().Phone, cmd.Sender().Address)
	if err != nil {
		return "", err
	}

	receiver, err := parcel.NewContact(cmd.Receiver().Name, cmd.Receiver().Phone, cmd.Receiver().Address)
	if err != nil {
		return "", err
	}

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(),
		parcel.NewTrackingNo(now),
		cmd.ItemType(),
		cmd.Size(),
		cmd.SubmittingType(),
		cmd.ReceivingType(),
		cmd.ShippingMethod(),
		sender,
		receiver,
		cmd.FromBranch(),
		cmd.ToBranch(),
		payment,
		now,
	)
	if err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Add(ctx, newParcel); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return newParcel.TrackingNo(), nil
}
