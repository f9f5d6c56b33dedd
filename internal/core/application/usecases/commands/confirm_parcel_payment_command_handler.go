package commands

import (
	"context"
	"time"
)

// ConfirmParcelPaymentCommandHandler settles a physical counter payment after
// staff confirmation.
type ConfirmParcelPaymentCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewConfirmParcelPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmParcelPaymentCommandHandler(uowFactory ParcelUoWFactory) ConfirmParcelPaymentCommandHandler {
	return ConfirmParcelPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirmation. Online and COD payments are rejected:
// they settle at placement and on delivery respectively.
func (h *ConfirmParcelPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmParcelPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = aggregate.ConfirmPayment(time.Now().UTC()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
