package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrAssignShipmentTransportCommandIsNotConstructed = errors.New(
	"AssignShipmentTransportCommand must be created via NewAssignShipmentTransportCommand constructor",
)

// AssignShipmentTransportCommand represents a request to lock a vehicle and
// driver onto a pending shipment.
type AssignShipmentTransportCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	vehicleID  kernel.UUID
	driverID   string

	guard guard.ConstructorGuard
}

// NewAssignShipmentTransportCommand creates a command to assign transport.
func NewAssignShipmentTransportCommand(shipmentID, vehicleID kernel.UUID, driverID string) (AssignShipmentTransportCommand, error) {
	command := AssignShipmentTransportCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setVehicleID(vehicleID),
		command.setDriverID(driverID),
	); err != nil {
		return AssignShipmentTransportCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignShipmentTransportCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipmentTransportCommandIsNotConstructed)
}

// ShipmentID returns the shipment receiving transport.
func (c AssignShipmentTransportCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// VehicleID returns the vehicle to claim.
func (c AssignShipmentTransportCommand) VehicleID() kernel.UUID { return c.vehicleID }

// DriverID returns the driver to assign.
func (c AssignShipmentTransportCommand) DriverID() string { return c.driverID }

func (c *AssignShipmentTransportCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *AssignShipmentTransportCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *AssignShipmentTransportCommand) setDriverID(driverID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverId")
	}
	c.driverID = driverID
	return nil
}
