package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrConfirmParcelPaymentCommandIsNotConstructed = errors.New(
	"ConfirmParcelPaymentCommand must be created via NewConfirmParcelPaymentCommand constructor",
)

// ConfirmParcelPaymentCommand represents a branch staff confirmation of a
// physical counter payment.
type ConfirmParcelPaymentCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmParcelPaymentCommand creates a command to settle a counter payment.
func NewConfirmParcelPaymentCommand(parcelID kernel.UUID) (ConfirmParcelPaymentCommand, error) {
	command := ConfirmParcelPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setParcelID(parcelID); err != nil {
		return ConfirmParcelPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmParcelPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmParcelPaymentCommandIsNotConstructed)
}

// ParcelID returns the parcel whose payment is being confirmed.
func (c ConfirmParcelPaymentCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c *ConfirmParcelPaymentCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
