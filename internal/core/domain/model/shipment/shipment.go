package shipment

import (
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created
	// through the NewShipment or RestoreShipment factory functions.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrShipmentIsSealed is returned when parcels are added to or removed from a
	// shipment that already left the Pending state.
	ErrShipmentIsSealed = errors.New("shipment manifest is sealed after verification")

	// ErrParcelAlreadyLoaded is returned when the same parcel is consolidated twice.
	ErrParcelAlreadyLoaded = errors.New("parcel is already loaded on this shipment")

	// ErrTransportNotAssigned is returned when a shipment is verified without a
	// vehicle and driver.
	ErrTransportNotAssigned = errors.New("shipment has no assigned vehicle and driver")
)

// ParcelLoad is one consolidated parcel's contribution to a shipment: its
// identity and physical footprint. The footprint is captured at consolidation
// time so shipment totals and parcel records cannot drift apart.
type ParcelLoad struct {
	ParcelID kernel.UUID
	Volume   float64
	Weight   float64
}

// Shipment is the aggregate root of B2B consolidation: a group of parcels
// traveling the same inter-branch route under one vehicle and driver, with its
// own linear status lifecycle.
//
// Invariants:
//   - parcelCount always equals the number of loads; a restored mismatch is a
//     ConsistencyViolationError, never silently patched
//   - the manifest is mutable only while Pending
//   - while status is Verified through Dispatched the assigned vehicle stays
//     claimed; Completed releases it
//   - totals are denormalized and recomputed on every add and remove
type Shipment struct {
	// id is the unique identifier of the shipment
	id kernel.UUID

	// sourceBranch and destinationBranch are the route endpoints
	sourceBranch      string
	destinationBranch string

	// currentLocation is the branch code the shipment was last seen at,
	// empty while in transit
	currentLocation string

	// vehicleID is the assigned transport, nil until assignment
	vehicleID *kernel.UUID

	// driverID is the assigned driver, empty until assignment
	driverID string

	// loads are the consolidated parcels with their footprints
	loads []ParcelLoad

	// status is the current lifecycle state
	status Status

	// denormalized totals, recomputed on every manifest change
	totalVolume   float64
	totalWeight   float64
	totalDistance float64
	parcelCount   int

	// guard ensures the shipment was properly constructed
	guard guard.ConstructorGuard
}

// NewShipment creates an empty Pending shipment for a route. The route distance
// is resolved by the caller from the branch graph and denormalized here.
func NewShipment(id kernel.UUID, sourceBranch, destinationBranch string, totalDistance float64) (*Shipment, error) {
	shipment := &Shipment{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setRoute(sourceBranch, destinationBranch),
		shipment.setTotalDistance(totalDistance),
	); err != nil {
		return nil, err
	}

	shipment.currentLocation = sourceBranch
	return shipment, nil
}

// RestoreShipment reconstructs a shipment from persistent storage. The persisted
// parcel count is checked against the loads; a mismatch is surfaced as a
// ConsistencyViolationError.
func RestoreShipment(
	id kernel.UUID,
	sourceBranch, destinationBranch, currentLocation string,
	vehicleID *kernel.UUID,
	driverID string,
	loads []ParcelLoad,
	status Status,
	totalVolume, totalWeight, totalDistance float64,
	parcelCount int,
) (*Shipment, error) {
	shipment := &Shipment{
		currentLocation: currentLocation,
		driverID:        driverID,
		loads:           loads,
		totalVolume:     totalVolume,
		totalWeight:     totalWeight,
		parcelCount:     parcelCount,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setRoute(sourceBranch, destinationBranch),
		shipment.setTotalDistance(totalDistance),
		shipment.setStatus(status),
	); err != nil {
		return nil, err
	}

	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return nil, err
		}
		shipment.vehicleID = vehicleID
	}

	if parcelCount != len(loads) {
		return nil, errs.NewConsistencyViolationError(
			"parcelCount",
			fmt.Sprintf("recorded %d, loaded %d parcels", parcelCount, len(loads)),
		)
	}

	return shipment, nil
}

// Validate ensures the Shipment was created through a factory function.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// SourceBranch returns the origin branch code of the route.
func (s *Shipment) SourceBranch() string { return s.sourceBranch }

// DestinationBranch returns the destination branch code of the route.
func (s *Shipment) DestinationBranch() string { return s.destinationBranch }

// CurrentLocation returns the branch code the shipment was last seen at.
// It is empty while the shipment is in transit.
func (s *Shipment) CurrentLocation() string { return s.currentLocation }

// Vehicle returns the assigned vehicle's ID, nil until assignment.
func (s *Shipment) Vehicle() *kernel.UUID { return s.vehicleID }

// Driver returns the assigned driver's ID, empty until assignment.
func (s *Shipment) Driver() string { return s.driverID }

// Loads returns the consolidated parcels with their footprints.
func (s *Shipment) Loads() []ParcelLoad { return s.loads }

// Status returns the current lifecycle state.
func (s *Shipment) Status() Status { return s.status }

// TotalVolume returns the summed volume of all loads in cubic meters.
func (s *Shipment) TotalVolume() float64 { return s.totalVolume }

// TotalWeight returns the summed weight of all loads in kilograms.
func (s *Shipment) TotalWeight() float64 { return s.totalWeight }

// TotalDistance returns the route distance in kilometers.
func (s *Shipment) TotalDistance() float64 { return s.totalDistance }

// ParcelCount returns the number of consolidated parcels.
func (s *Shipment) ParcelCount() int { return s.parcelCount }

// Contains reports whether the parcel is loaded on this shipment.
func (s *Shipment) Contains(parcelID kernel.UUID) bool {
	for _, load := range s.loads {
		if load.ParcelID.IsEqual(parcelID) {
			return true
		}
	}
	return false
}

// AddParcel consolidates a parcel onto the shipment and recomputes the totals.
// The manifest is mutable only while the shipment is Pending.
func (s *Shipment) AddParcel(load ParcelLoad) error {
	if s.status != StatusPending {
		return ErrShipmentIsSealed
	}
	if err := load.ParcelID.Validate(); err != nil {
		return err
	}
	if s.Contains(load.ParcelID) {
		return ErrParcelAlreadyLoaded
	}

	s.loads = append(s.loads, load)
	s.recomputeTotals()
	return nil
}

// RemoveParcel takes a parcel off the manifest and recomputes the totals.
func (s *Shipment) RemoveParcel(parcelID kernel.UUID) error {
	if s.status != StatusPending {
		return ErrShipmentIsSealed
	}
	if err := parcelID.Validate(); err != nil {
		return err
	}

	for i, load := range s.loads {
		if load.ParcelID.IsEqual(parcelID) {
			s.loads = append(s.loads[:i], s.loads[i+1:]...)
			s.recomputeTotals()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("parcelId", parcelID)
}

// AssignVehicle claims a vehicle for the shipment. Transport is assignable only
// while the shipment is Pending. The claim fails with a VehicleUnavailableError
// if the vehicle is already engaged, and with a CapacityExceededError if the
// consolidated totals exceed either capability.
func (s *Shipment) AssignVehicle(v *vehicle.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if s.status != StatusPending {
		return ErrShipmentIsSealed
	}

	if s.totalVolume > v.CapableVolume() {
		return errs.NewCapacityExceededError("volume", 0, s.totalVolume, v.CapableVolume())
	}
	if s.totalWeight > v.CapableWeight() {
		return errs.NewCapacityExceededError("weight", 0, s.totalWeight, v.CapableWeight())
	}

	if err := v.Claim(); err != nil {
		return err
	}

	id := v.ID()
	s.vehicleID = &id
	return nil
}

// AssignDriver records the driver for the shipment. One-active-shipment-per-
// driver exclusivity is enforced by the application layer against storage.
func (s *Shipment) AssignDriver(driverID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverId")
	}
	if s.status != StatusPending {
		return ErrShipmentIsSealed
	}

	s.driverID = driverID
	return nil
}

// Verify seals the manifest and moves the shipment to Verified. A shipment
// cannot be verified without transport assigned.
func (s *Shipment) Verify() error {
	if err := s.checkTransition(StatusVerified); err != nil {
		return err
	}
	if s.vehicleID == nil || s.driverID == "" {
		return ErrTransportNotAssigned
	}

	s.status = StatusVerified
	return nil
}

// Depart moves the shipment to InTransit and clears its branch location.
func (s *Shipment) Depart() error {
	if err := s.checkTransition(StatusInTransit); err != nil {
		return err
	}

	s.status = StatusInTransit
	s.currentLocation = ""
	return nil
}

// Dispatch records arrival at the destination branch.
func (s *Shipment) Dispatch() error {
	if err := s.checkTransition(StatusDispatched); err != nil {
		return err
	}

	s.status = StatusDispatched
	s.currentLocation = s.destinationBranch
	return nil
}

// Complete finishes the shipment and releases the assigned vehicle back to the
// pool. The release is part of the same transition so a completed shipment can
// never leak an engaged vehicle.
func (s *Shipment) Complete(v *vehicle.Vehicle) error {
	if err := s.checkTransition(StatusCompleted); err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if s.vehicleID == nil || !v.ID().IsEqual(*s.vehicleID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicleId",
			fmt.Errorf("vehicle %s is not assigned to this shipment", v.RegistrationNo()),
		)
	}

	s.status = StatusCompleted
	v.Release()
	return nil
}

func (s *Shipment) checkTransition(target Status) error {
	if !s.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError("shipment", s.status.String(), target.String())
	}
	return nil
}

func (s *Shipment) recomputeTotals() {
	var volume, weight float64
	for _, load := range s.loads {
		volume += load.Volume
		weight += load.Weight
	}
	s.totalVolume = volume
	s.totalWeight = weight
	s.parcelCount = len(s.loads)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setRoute(sourceBranch, destinationBranch string) error {
	if sourceBranch == "" || destinationBranch == "" {
		return errs.NewValueIsRequiredError("route branch codes")
	}
	if sourceBranch == destinationBranch {
		return errs.NewValueIsInvalidErrorWithCause(
			"route",
			fmt.Errorf("source and destination are both %s", sourceBranch),
		)
	}
	s.sourceBranch = sourceBranch
	s.destinationBranch = destinationBranch
	return nil
}

func (s *Shipment) setTotalDistance(totalDistance float64) error {
	if totalDistance < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalDistance",
			fmt.Errorf("%g is negative", totalDistance),
		)
	}
	s.totalDistance = totalDistance
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
