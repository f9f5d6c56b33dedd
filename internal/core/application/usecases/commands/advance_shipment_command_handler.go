package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// AdvanceResult is the outcome of a committed shipment transition.
type AdvanceResult struct {
	Status          shipment.Status
	ReleasedVehicle string
}

// AdvanceShipmentCommandHandler moves a shipment along its linear lifecycle and
// cascades the transition to its parcels and, on completion, to its vehicle.
// Cascades run in the same transaction as the shipment update: the bulk status
// change is visible entirely or not at all.
//
// Cascade map:
//   - InTransit: every loaded parcel departs
//   - Dispatched: every loaded parcel arrives at the collection center
//   - Completed: the assigned vehicle is released
type AdvanceShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAdvanceShipmentCommandHandler creates a handler for shipment transitions.
func NewAdvanceShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the transition and returns the committed status together
// with the registration number of the released vehicle, if any.
func (h *AdvanceShipmentCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentCommand) (AdvanceResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return AdvanceResult{}, err
	}

	var released *vehicle.Vehicle

	switch cmd.Target() {
	case shipment.StatusVerified:
		err = aggregate.Verify()
	case shipment.StatusInTransit:
		if err = aggregate.Depart(); err == nil {
			err = h.cascadeParcels(ctx, uow, aggregate, parcel.EventDeparted, now)
		}
	case shipment.StatusDispatched:
		if err = aggregate.Dispatch(); err == nil {
			err = h.cascadeParcels(ctx, uow, aggregate, parcel.EventArrivedAtCollectionCenter, now)
		}
	case shipment.StatusCompleted:
		released, err = h.complete(ctx, uow, aggregate)
	default:
		err = errs.NewInvalidTransitionError("shipment", aggregate.Status().String(), cmd.Target().String())
	}
	if err != nil {
		return AdvanceResult{}, err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return AdvanceResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceResult{}, err
	}

	result := AdvanceResult{Status: aggregate.Status()}
	if released != nil {
		result.ReleasedVehicle = released.RegistrationNo()
	}

	h.notify(ctx, aggregate, result, now)
	return result, nil
}

// cascadeParcels applies the same event to every parcel loaded on the shipment.
func (h *AdvanceShipmentCommandHandler) cascadeParcels(
	ctx context.Context,
	uow ShipmentUoW,
	aggregate *shipment.Shipment,
	event parcel.Event,
	at time.Time,
) error {
	parcelRepo := uow.ParcelRepository()
	parcels, err := parcelRepo.GetAllByShipment(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	for _, p := range parcels {
		if err = p.ApplyEvent(event, at); err != nil {
			return err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (h *AdvanceShipmentCommandHandler) complete(
	ctx context.Context,
	uow ShipmentUoW,
	aggregate *shipment.Shipment,
) (*vehicle.Vehicle, error) {
	if aggregate.Vehicle() == nil {
		return nil, errs.NewValueIsRequiredError("assignedVehicle")
	}

	transport, err := uow.VehicleRepository().Get(ctx, *aggregate.Vehicle())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Complete(transport); err != nil {
		return nil, err
	}

	if err = uow.VehicleRepository().Update(ctx, transport); err != nil {
		return nil, err
	}
	return transport, nil
}

func (h *AdvanceShipmentCommandHandler) notify(ctx context.Context, aggregate *shipment.Shipment, result AdvanceResult, at time.Time) {
	if h.publisher == nil {
		return
	}

	event := ports.ShipmentAdvanced{
		ShipmentID:      aggregate.ID().String(),
		Status:          result.Status.String(),
		ParcelCount:     aggregate.ParcelCount(),
		ReleasedVehicle: result.ReleasedVehicle,
		OccurredAt:      at,
	}
	if err := h.publisher.PublishShipmentAdvanced(ctx, event); err != nil {
		h.logger.Warn("publish shipment advance",
			slog.String("shipmentId", aggregate.ID().String()), slog.Any("error", err))
	}
}
