package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/services"
)

// ConsolidateShipmentCommandHandler groups hub parcels into a new Pending
// shipment. Consolidation is all-or-nothing: one rejected parcel rolls back the
// whole batch.
type ConsolidateShipmentCommandHandler struct {
	uowFactory   ShipmentUoWFactory
	consolidator *services.ShipmentConsolidator
}

// NewConsolidateShipmentCommandHandler creates a handler for consolidations.
func NewConsolidateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	consolidator *services.ShipmentConsolidator,
) ConsolidateShipmentCommandHandler {
	return ConsolidateShipmentCommandHandler{
		uowFactory:   uowFactory,
		consolidator: consolidator,
	}
}

// Handle processes the consolidation and persists the shipment plus every
// parcel's ShipmentAssigned transition in one transaction.
func (h *ConsolidateShipmentCommandHandler) Handle(ctx context.Context, cmd ConsolidateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	parcels := make([]*parcel.Parcel, 0, len(cmd.ParcelIDs()))
	for _, parcelID := range cmd.ParcelIDs() {
		aggregate, err := parcelRepo.Get(ctx, parcelID)
		if err != nil {
			return err
		}
		parcels = append(parcels, aggregate)
	}

	newShipment, err := h.consolidator.Consolidate(
		cmd.ShipmentID(), parcels, cmd.SourceBranch(), cmd.DestinationBranch(), now)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, newShipment); err != nil {
		return err
	}

	for _, aggregate := range parcels {
		if err = parcelRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
