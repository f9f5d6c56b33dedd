package commands

import (
	"context"
	"errors"

	"parcelhub/internal/pkg/errs"
)

// AssignShipmentTransportCommandHandler locks a vehicle and driver onto a
// pending shipment and verifies it. The vehicle claim rides the storage-level
// compare-and-set on availability, so two shipments racing for the same vehicle
// cannot both win; driver exclusivity is checked against active shipments in
// the same transaction.
type AssignShipmentTransportCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewAssignShipmentTransportCommandHandler creates a handler for transport assignment.
func NewAssignShipmentTransportCommandHandler(uowFactory ShipmentUoWFactory) AssignShipmentTransportCommandHandler {
	return AssignShipmentTransportCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment: claim the vehicle, check the driver has no
// other active shipment, seal the manifest as Verified, and persist everything
// atomically.
func (h *AssignShipmentTransportCommandHandler) Handle(ctx context.Context, cmd AssignShipmentTransportCommand) error {
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

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	active, err := uow.ShipmentRepository().GetActiveByDriver(ctx, cmd.DriverID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if active != nil && !active.IsEqual(aggregate) {
		return errs.NewDriverUnavailableError(cmd.DriverID())
	}

	transport, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignVehicle(transport); err != nil {
		return err
	}
	if err = aggregate.AssignDriver(cmd.DriverID()); err != nil {
		return err
	}
	if err = aggregate.Verify(); err != nil {
		return err
	}

	if err = uow.VehicleRepository().Update(ctx, transport); err != nil {
		return err
	}
	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
