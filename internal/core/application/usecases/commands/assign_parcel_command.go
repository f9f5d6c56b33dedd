package commands

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrAssignParcelCommandIsNotConstructed = errors.New(
	"AssignParcelCommand must be created via NewAssignParcelCommand constructor",
)

// AssignParcelCommand represents a request to put a parcel onto a vehicle's
// pickup or delivery round for a date and half-day slot.
type AssignParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID     kernel.UUID
	vehicleID    kernel.UUID
	date         time.Time
	slot         vehicle.TimeSlot
	scheduleType vehicle.ScheduleType

	guard guard.ConstructorGuard
}

// NewAssignParcelCommand creates a command to assign a parcel into a schedule
// bucket.
func NewAssignParcelCommand(
	parcelID kernel.UUID,
	vehicleID kernel.UUID,
	date time.Time,
	slot vehicle.TimeSlot,
	scheduleType vehicle.ScheduleType,
) (AssignParcelCommand, error) {
	command := AssignParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setVehicleID(vehicleID),
		command.setDate(date),
		command.setBucket(slot, scheduleType),
	); err != nil {
		return AssignParcelCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignParcelCommand) Validate() error {
	return c.guard.Validate(ErrAssignParcelCommandIsNotConstructed)
}

// ParcelID returns the parcel to assign.
func (c AssignParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

// VehicleID returns the vehicle running the round.
func (c AssignParcelCommand) VehicleID() kernel.UUID { return c.vehicleID }

// Date returns the calendar day of the round.
func (c AssignParcelCommand) Date() time.Time { return c.date }

// Slot returns the half-day window.
func (c AssignParcelCommand) Slot() vehicle.TimeSlot { return c.slot }

// ScheduleType returns whether this is a pickup or delivery round.
func (c AssignParcelCommand) ScheduleType() vehicle.ScheduleType { return c.scheduleType }

func (c *AssignParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *AssignParcelCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *AssignParcelCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	c.date = date.UTC().Truncate(24 * time.Hour)
	return nil
}

func (c *AssignParcelCommand) setBucket(slot vehicle.TimeSlot, scheduleType vehicle.ScheduleType) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if err := scheduleType.Validate(); err != nil {
		return err
	}
	c.slot = slot
	c.scheduleType = scheduleType
	return nil
}
