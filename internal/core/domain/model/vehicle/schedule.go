package vehicle

import (
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	// ErrScheduleIsNotConstructed is returned when a Schedule instance was not created
	// through the NewSchedule or RestoreSchedule factory functions.
	ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewSchedule constructor")

	// ErrParcelAlreadyAssigned is returned when a parcel is assigned to a bucket that
	// already contains it.
	ErrParcelAlreadyAssigned = errors.New("parcel is already assigned to this schedule")

	// ErrVehicleMismatch is returned when an assignment is checked against a vehicle
	// other than the one the schedule belongs to.
	ErrVehicleMismatch = errors.New("vehicle does not belong to this schedule")
)

// TimeSlot is the half-day window of a pickup or delivery round.
type TimeSlot int

const (
	TimeSlotUnknown TimeSlot = iota
	TimeSlotMorning
	TimeSlotAfternoon
)

func getTimeSlotNames() map[TimeSlot]string {
	return map[TimeSlot]string{
		TimeSlotMorning:   "morning",
		TimeSlotAfternoon: "afternoon",
	}
}

// TimeSlotFromString parses a time slot from its string representation.
func TimeSlotFromString(value string) (TimeSlot, error) {
	for slot, name := range getTimeSlotNames() {
		if name == value {
			return slot, nil
		}
	}
	return TimeSlotUnknown, errs.NewValueIsInvalidErrorWithCause(
		"timeSlot",
		fmt.Errorf("unknown time slot %q", value),
	)
}

// Validate checks that the time slot is one of the known values.
func (s TimeSlot) Validate() error {
	if _, ok := getTimeSlotNames()[s]; !ok {
		return errs.NewValueIsInvalidError("timeSlot")
	}
	return nil
}

func (s TimeSlot) String() string {
	if name, ok := getTimeSlotNames()[s]; ok {
		return name
	}
	return "unknown"
}

// ScheduleType separates pickup rounds from delivery rounds.
type ScheduleType int

const (
	ScheduleTypeUnknown ScheduleType = iota
	ScheduleTypePickup
	ScheduleTypeDelivery
)

func getScheduleTypeNames() map[ScheduleType]string {
	return map[ScheduleType]string{
		ScheduleTypePickup:   "pickup",
		ScheduleTypeDelivery: "delivery",
	}
}

// ScheduleTypeFromString parses a schedule type from its string representation.
func ScheduleTypeFromString(value string) (ScheduleType, error) {
	for scheduleType, name := range getScheduleTypeNames() {
		if name == value {
			return scheduleType, nil
		}
	}
	return ScheduleTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"scheduleType",
		fmt.Errorf("unknown schedule type %q", value),
	)
}

// Validate checks that the schedule type is one of the known values.
func (t ScheduleType) Validate() error {
	if _, ok := getScheduleTypeNames()[t]; !ok {
		return errs.NewValueIsInvalidError("scheduleType")
	}
	return nil
}

func (t ScheduleType) String() string {
	if name, ok := getScheduleTypeNames()[t]; ok {
		return name
	}
	return "unknown"
}

// Totals is a running load snapshot of one schedule bucket.
type Totals struct {
	Volume float64
	Weight float64
}

// Schedule is one pickup or delivery bucket: a vehicle on a date and half-day
// slot. It accumulates parcels and running volume and weight totals, and rejects
// any assignment that would push either total past the vehicle's capability.
//
// Buckets are unique per (vehicle, date, slot, type); the persistence layer
// enforces that with a unique index and conditions every update on the loaded
// totals so concurrent assignments against the same bucket cannot oversell
// capacity.
type Schedule struct {
	// id is the unique identifier of the schedule bucket
	id kernel.UUID

	// vehicleID is the vehicle running this round
	vehicleID kernel.UUID

	// date is the calendar day of the round, truncated to midnight UTC
	date time.Time

	// slot is the half-day window
	slot TimeSlot

	// scheduleType separates pickup rounds from delivery rounds
	scheduleType ScheduleType

	// parcelIDs are the parcels assigned to this round
	parcelIDs []kernel.UUID

	// totals is the running load of the round
	totals Totals

	// loadedTotals is the load read from storage
	loadedTotals Totals

	// guard ensures the schedule was properly constructed
	guard guard.ConstructorGuard
}

// NewSchedule creates an empty schedule bucket for a vehicle, date, slot, and type.
func NewSchedule(
	id kernel.UUID,
	vehicleID kernel.UUID,
	date time.Time,
	slot TimeSlot,
	scheduleType ScheduleType,
) (*Schedule, error) {
	schedule := &Schedule{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		schedule.setID(id),
		schedule.setVehicleID(vehicleID),
		schedule.setSlot(slot),
		schedule.setScheduleType(scheduleType),
	); err != nil {
		return nil, err
	}

	schedule.date = date.UTC().Truncate(24 * time.Hour)
	return schedule, nil
}

// RestoreSchedule reconstructs a schedule bucket from persistent storage. The
// persisted totals become the compare-and-set baseline for the next update.
func RestoreSchedule(
	id kernel.UUID,
	vehicleID kernel.UUID,
	date time.Time,
	slot TimeSlot,
	scheduleType ScheduleType,
	parcelIDs []kernel.UUID,
	totals Totals,
) (*Schedule, error) {
	schedule := &Schedule{
		parcelIDs:    parcelIDs,
		totals:       totals,
		loadedTotals: totals,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		schedule.setID(id),
		schedule.setVehicleID(vehicleID),
		schedule.setSlot(slot),
		schedule.setScheduleType(scheduleType),
	); err != nil {
		return nil, err
	}

	schedule.date = date.UTC().Truncate(24 * time.Hour)
	return schedule, nil
}

// Validate ensures the Schedule was created through a factory function.
func (s *Schedule) Validate() error {
	if s == nil {
		return ErrScheduleIsNotConstructed
	}
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

// IsEqual compares two schedules by their unique identifiers.
func (s *Schedule) IsEqual(other *Schedule) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the schedule's unique identifier.
func (s *Schedule) ID() kernel.UUID { return s.id }

// VehicleID returns the vehicle running this round.
func (s *Schedule) VehicleID() kernel.UUID { return s.vehicleID }

// Date returns the calendar day of the round.
func (s *Schedule) Date() time.Time { return s.date }

// Slot returns the half-day window.
func (s *Schedule) Slot() TimeSlot { return s.slot }

// Type returns whether this is a pickup or delivery round.
func (s *Schedule) Type() ScheduleType { return s.scheduleType }

// ParcelIDs returns the parcels assigned to this round.
func (s *Schedule) ParcelIDs() []kernel.UUID { return s.parcelIDs }

// Totals returns the running volume and weight of the round.
func (s *Schedule) Totals() Totals { return s.totals }

// LoadedTotals returns the totals read from storage. The persistence layer
// conditions its update on these values to reject concurrent assignments.
func (s *Schedule) LoadedTotals() Totals { return s.loadedTotals }

// Contains reports whether the parcel is assigned to this round.
func (s *Schedule) Contains(parcelID kernel.UUID) bool {
	for _, id := range s.parcelIDs {
		if id.IsEqual(parcelID) {
			return true
		}
	}
	return false
}

// Assign adds a parcel to the round after checking both capability dimensions of
// the schedule's vehicle. A violated dimension is reported with a
// CapacityExceededError naming the dimension; the totals are left unchanged.
func (s *Schedule) Assign(vehicle *Vehicle, parcelID kernel.UUID, size kernel.ItemSize) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	if !vehicle.ID().IsEqual(s.vehicleID) {
		return ErrVehicleMismatch
	}
	if err := parcelID.Validate(); err != nil {
		return err
	}
	if err := size.Validate(); err != nil {
		return err
	}
	if s.Contains(parcelID) {
		return ErrParcelAlreadyAssigned
	}

	volume, weight := size.Volume(), size.Weight()
	if s.totals.Volume+volume > vehicle.CapableVolume() {
		return errs.NewCapacityExceededError("volume", s.totals.Volume, volume, vehicle.CapableVolume())
	}
	if s.totals.Weight+weight > vehicle.CapableWeight() {
		return errs.NewCapacityExceededError("weight", s.totals.Weight, weight, vehicle.CapableWeight())
	}

	s.parcelIDs = append(s.parcelIDs, parcelID)
	s.totals.Volume += volume
	s.totals.Weight += weight
	return nil
}

// Unassign removes a parcel from the round and returns its volume and weight to
// the pool. Removing a parcel that is not assigned is rejected.
func (s *Schedule) Unassign(parcelID kernel.UUID, size kernel.ItemSize) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	if err := size.Validate(); err != nil {
		return err
	}

	for i, id := range s.parcelIDs {
		if id.IsEqual(parcelID) {
			s.parcelIDs = append(s.parcelIDs[:i], s.parcelIDs[i+1:]...)
			s.totals.Volume -= size.Volume()
			s.totals.Weight -= size.Weight()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("parcelId", parcelID)
}

// Utilization reports the round's volume and weight load as percentages of the
// vehicle's capabilities. A zero capability reports 0%, not a division error.
func (s *Schedule) Utilization(vehicle *Vehicle) (volumePct, weightPct float64) {
	if vehicle == nil {
		return 0, 0
	}
	if vehicle.CapableVolume() > 0 {
		volumePct = s.totals.Volume / vehicle.CapableVolume() * 100
	}
	if vehicle.CapableWeight() > 0 {
		weightPct = s.totals.Weight / vehicle.CapableWeight() * 100
	}
	return volumePct, weightPct
}

func (s *Schedule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Schedule) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	s.vehicleID = vehicleID
	return nil
}

func (s *Schedule) setSlot(slot TimeSlot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	s.slot = slot
	return nil
}

func (s *Schedule) setScheduleType(scheduleType ScheduleType) error {
	if err := scheduleType.Validate(); err != nil {
		return err
	}
	s.scheduleType = scheduleType
	return nil
}
