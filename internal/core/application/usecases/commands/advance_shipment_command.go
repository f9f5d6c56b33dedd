package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
	"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
)

// AdvanceShipmentCommand represents a request to move a shipment to the next
// lifecycle state.
type AdvanceShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	target     shipment.Status

	guard guard.ConstructorGuard
}

// NewAdvanceShipmentCommand creates a command to advance a shipment.
func NewAdvanceShipmentCommand(shipmentID kernel.UUID, target shipment.Status) (AdvanceShipmentCommand, error) {
	command := AdvanceShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setTarget(target),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to advance.
func (c AdvanceShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// Target returns the requested next state.
func (c AdvanceShipmentCommand) Target() shipment.Status { return c.target }

func (c *AdvanceShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *AdvanceShipmentCommand) setTarget(target shipment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
