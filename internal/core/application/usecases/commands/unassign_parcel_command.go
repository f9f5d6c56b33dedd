package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrUnassignParcelCommandIsNotConstructed = errors.New(
	"UnassignParcelCommand must be created via NewUnassignParcelCommand constructor",
)

// UnassignParcelCommand represents a request to take a parcel off a scheduled
// round, returning its footprint to the bucket.
type UnassignParcelCommand struct { //nolint:recvcheck //using for validation
	scheduleID kernel.UUID
	parcelID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnassignParcelCommand creates a command to remove a parcel from a bucket.
func NewUnassignParcelCommand(scheduleID, parcelID kernel.UUID) (UnassignParcelCommand, error) {
	command := UnassignParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setScheduleID(scheduleID),
		command.setParcelID(parcelID),
	); err != nil {
		return UnassignParcelCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignParcelCommand) Validate() error {
	return c.guard.Validate(ErrUnassignParcelCommandIsNotConstructed)
}

// ScheduleID returns the bucket to remove the parcel from.
func (c UnassignParcelCommand) ScheduleID() kernel.UUID { return c.scheduleID }

// ParcelID returns the parcel to remove.
func (c UnassignParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

func (c *UnassignParcelCommand) setScheduleID(scheduleID kernel.UUID) error {
	if err := scheduleID.Validate(); err != nil {
		return err
	}
	c.scheduleID = scheduleID
	return nil
}

func (c *UnassignParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}
