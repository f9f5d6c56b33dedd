package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrConsolidateShipmentCommandIsNotConstructed = errors.New(
	"ConsolidateShipmentCommand must be created via NewConsolidateShipmentCommand constructor",
)

// ConsolidateShipmentCommand represents a request to group hub parcels bound
// for the same destination into one B2B shipment.
type ConsolidateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID        kernel.UUID
	parcelIDs         []kernel.UUID
	sourceBranch      string
	destinationBranch string

	guard guard.ConstructorGuard
}

// NewConsolidateShipmentCommand creates a command to consolidate parcels.
func NewConsolidateShipmentCommand(
	shipmentID kernel.UUID,
	parcelIDs []kernel.UUID,
	sourceBranch, destinationBranch string,
) (ConsolidateShipmentCommand, error) {
	command := ConsolidateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setParcelIDs(parcelIDs),
		command.setRoute(sourceBranch, destinationBranch),
	); err != nil {
		return ConsolidateShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConsolidateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrConsolidateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c ConsolidateShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

// ParcelIDs returns the parcels to consolidate.
func (c ConsolidateShipmentCommand) ParcelIDs() []kernel.UUID { return c.parcelIDs }

// SourceBranch returns the origin hub of the route.
func (c ConsolidateShipmentCommand) SourceBranch() string { return c.sourceBranch }

// DestinationBranch returns the destination of the route.
func (c ConsolidateShipmentCommand) DestinationBranch() string { return c.destinationBranch }

func (c *ConsolidateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *ConsolidateShipmentCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return errs.NewValueIsRequiredError("parcelIds")
	}
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.parcelIDs = parcelIDs
	return nil
}

func (c *ConsolidateShipmentCommand) setRoute(sourceBranch, destinationBranch string) error {
	if sourceBranch == "" || destinationBranch == "" {
		return errs.NewValueIsRequiredError("route branch codes")
	}
	c.sourceBranch = sourceBranch
	c.destinationBranch = destinationBranch
	return nil
}
