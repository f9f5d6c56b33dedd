package commands

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"
)

// AssignmentResult is the outcome of a committed schedule assignment.
type AssignmentResult struct {
	ScheduleID kernel.UUID
	VolumePct  float64
	WeightPct  float64
}

// AssignParcelCommandHandler assigns a parcel into a schedule bucket,
// creating the bucket on first use. The whole operation runs in one
// transaction: capacity check, parcel transition, and totals update either all
// commit or none do. A concurrent assignment into the same bucket loses the
// storage-level compare-and-set and surfaces as an update error for the caller
// to retry.
type AssignParcelCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

// NewAssignParcelCommandHandler creates a handler for schedule assignments.
func NewAssignParcelCommandHandler(uowFactory ScheduleUoWFactory) AssignParcelCommandHandler {
	return AssignParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment and returns the bucket and its utilization.
// Pickup rounds stamp the parcel PendingPickup; delivery rounds stamp it
// DeliveryDispatched.
func (h *AssignParcelCommandHandler) Handle(ctx context.Context, cmd AssignParcelCommand) (AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return AssignmentResult{}, err
	}

	transport, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return AssignmentResult{}, err
	}

	schedule, created, err := h.findOrCreateBucket(ctx, uow.ScheduleRepository(), cmd)
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = schedule.Assign(transport, aggregate.ID(), aggregate.Size()); err != nil {
		return AssignmentResult{}, err
	}

	if err = aggregate.ApplyEvent(roundEvent(cmd.ScheduleType()), now); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.ParcelRepository().Update(ctx, aggregate); err != nil {
		return AssignmentResult{}, err
	}

	if created {
		err = uow.ScheduleRepository().Add(ctx, schedule)
	} else {
		err = uow.ScheduleRepository().Update(ctx, schedule)
	}
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	volumePct, weightPct := schedule.Utilization(transport)
	return AssignmentResult{
		ScheduleID: schedule.ID(),
		VolumePct:  volumePct,
		WeightPct:  weightPct,
	}, nil
}

func (h *AssignParcelCommandHandler) findOrCreateBucket(
	ctx context.Context,
	scheduleRepo ports.ScheduleRepository,
	cmd AssignParcelCommand,
) (*vehicle.Schedule, bool, error) {
	schedule, err := scheduleRepo.GetByBucket(ctx, cmd.VehicleID(), cmd.Date(), cmd.Slot(), cmd.ScheduleType())
	if err == nil {
		return schedule, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	schedule, err = vehicle.NewSchedule(kernel.NewUUID(), cmd.VehicleID(), cmd.Date(), cmd.Slot(), cmd.ScheduleType())
	if err != nil {
		return nil, false, err
	}
	return schedule, true, nil
}

// roundEvent maps the round type to the parcel transition it triggers.
func roundEvent(scheduleType vehicle.ScheduleType) parcel.Event {
	if scheduleType == vehicle.ScheduleTypePickup {
		return parcel.EventPickupScheduled
	}
	return parcel.EventOutForDelivery
}
