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

var (
	ErrNoParcelsPendingPickup = errors.New("no parcels pending pickup")
	ErrNoVehiclesAvailable    = errors.New("no pickup vehicles available")
)

// pickupBucket tracks a next-day schedule during a planning round, remembering
// whether it came from storage and whether it picked up new assignments.
type pickupBucket struct {
	schedule *vehicle.Schedule
	created  bool
	dirty    bool
}

// SchedulePickupsCommandHandler packs pending pickup parcels into next-day
// morning rounds. Parcels are grouped by origin branch and offered to each
// available pickup vehicle in turn; a vehicle whose bucket is full is skipped
// and the next one tried. Parcels no vehicle can take remain pending for the
// next round, which is a normal outcome rather than an error.
//
// Example:
//
//	handler := NewSchedulePickupsCommandHandler(uowFactory)
//	cmd := NewSchedulePickupsCommand()
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoParcelsPendingPickup):
//	    log.Println("Nothing to plan")
//	case errors.Is(err, ErrNoVehiclesAvailable):
//	    log.Println("Pickup fleet is fully booked")
//	case err != nil:
//	    log.Printf("Planning failed: %v", err)
//	}
type SchedulePickupsCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

// NewSchedulePickupsCommandHandler creates a handler for pickup planning rounds.
func NewSchedulePickupsCommandHandler(uowFactory ScheduleUoWFactory) SchedulePickupsCommandHandler {
	return SchedulePickupsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one planning round in a single transaction. Returns
// ErrNoParcelsPendingPickup when there is nothing to plan and
// ErrNoVehiclesAvailable when no branch with pending parcels has a free
// pickup vehicle.
func (h SchedulePickupsCommandHandler) Handle(ctx context.Context, command SchedulePickupsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	roundDate := now.Add(24 * time.Hour).Truncate(24 * time.Hour)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	vehicleRepo := uow.VehicleRepository()
	scheduleRepo := uow.ScheduleRepository()

	pending, err := parcelRepo.GetAllPendingPickup(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return ErrNoParcelsPendingPickup
	}

	byBranch := make(map[string][]*parcel.Parcel)
	for _, p := range pending {
		byBranch[p.FromBranch()] = append(byBranch[p.FromBranch()], p)
	}

	fleetFound := false
	buckets := make(map[kernel.UUID]*pickupBucket)

	for branch, batch := range byBranch {
		fleet, err := vehicleRepo.GetAllAvailableByBranch(ctx, branch, vehicle.VehicleTypePickupDelivery)
		if err != nil {
			return err
		}
		if len(fleet) == 0 {
			continue
		}
		fleetFound = true

		for _, p := range batch {
			if err = h.packParcel(ctx, scheduleRepo, parcelRepo, buckets, fleet, p, roundDate, now); err != nil {
				return err
			}
		}
	}

	if !fleetFound {
		return ErrNoVehiclesAvailable
	}

	for _, bucket := range buckets {
		if !bucket.dirty {
			continue
		}
		if bucket.created {
			err = scheduleRepo.Add(ctx, bucket.schedule)
		} else {
			err = scheduleRepo.Update(ctx, bucket.schedule)
		}
		if err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// packParcel offers the parcel to each vehicle in the fleet until one has
// capacity left. A parcel that fits nowhere is left untouched.
func (h SchedulePickupsCommandHandler) packParcel(
	ctx context.Context,
	scheduleRepo ports.ScheduleRepository,
	parcelRepo ports.ParcelRepository,
	buckets map[kernel.UUID]*pickupBucket,
	fleet []*vehicle.Vehicle,
	p *parcel.Parcel,
	roundDate time.Time,
	now time.Time,
) error {
	for _, transport := range fleet {
		bucket, err := h.bucketFor(ctx, scheduleRepo, buckets, transport, roundDate)
		if err != nil {
			return err
		}

		err = bucket.schedule.Assign(transport, p.ID(), p.Size())
		if errors.Is(err, errs.ErrCapacityExceeded) {
			continue
		}
		if err != nil {
			return err
		}
		bucket.dirty = true

		if err = p.ApplyEvent(parcel.EventPickupScheduled, now); err != nil {
			return err
		}
		return parcelRepo.Update(ctx, p)
	}

	return nil
}

func (h SchedulePickupsCommandHandler) bucketFor(
	ctx context.Context,
	scheduleRepo ports.ScheduleRepository,
	buckets map[kernel.UUID]*pickupBucket,
	transport *vehicle.Vehicle,
	roundDate time.Time,
) (*pickupBucket, error) {
	if bucket, ok := buckets[transport.ID()]; ok {
		return bucket, nil
	}

	schedule, err := scheduleRepo.GetByBucket(
		ctx, transport.ID(), roundDate, vehicle.TimeSlotMorning, vehicle.ScheduleTypePickup)
	if err == nil {
		bucket := &pickupBucket{schedule: schedule}
		buckets[transport.ID()] = bucket
		return bucket, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	schedule, err = vehicle.NewSchedule(
		kernel.NewUUID(), transport.ID(), roundDate, vehicle.TimeSlotMorning, vehicle.ScheduleTypePickup)
	if err != nil {
		return nil, err
	}
	bucket := &pickupBucket{schedule: schedule, created: true}
	buckets[transport.ID()] = bucket
	return bucket, nil
}
