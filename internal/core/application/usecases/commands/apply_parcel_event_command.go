package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/guard"
)

var ErrApplyParcelEventCommandIsNotConstructed = errors.New(
	"ApplyParcelEventCommand must be created via NewApplyParcelEventCommand constructor",
)

// ApplyParcelEventCommand represents one confirmed external event against a
// parcel: a QR scan, a driver update, or a staff confirmation.
type ApplyParcelEventCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	event    parcel.Event

	guard guard.ConstructorGuard
}

// NewApplyParcelEventCommand creates a command to advance a parcel's lifecycle.
func NewApplyParcelEventCommand(parcelID kernel.UUID, event parcel.Event) (ApplyParcelEventCommand, error) {
	command := ApplyParcelEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setEvent(event),
	); err != nil {
		return ApplyParcelEventCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyParcelEventCommand) Validate() error {
	return c.guard.Validate(ErrApplyParcelEventCommandIsNotConstructed)
}

// ParcelID returns the parcel the event applies to.
func (c ApplyParcelEventCommand) ParcelID() kernel.UUID { return c.parcelID }

// Event returns the confirmed external event.
func (c ApplyParcelEventCommand) Event() parcel.Event { return c.event }

func (c *ApplyParcelEventCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *ApplyParcelEventCommand) setEvent(event parcel.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	c.event = event
	return nil
}
