package vehicle

import (
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not created
	// through the NewVehicle or RestoreVehicle factory functions.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

	// ErrRegistrationNoIsRequired is returned when a vehicle is missing its plate number.
	ErrRegistrationNoIsRequired = errs.NewValueIsRequiredError("registrationNo")

	// ErrBranchCodesAreRequired is returned when a vehicle is registered without any
	// branch it operates from.
	ErrBranchCodesAreRequired = errs.NewValueIsRequiredError("branchCodes")
)

// VehicleType distinguishes long-haul shipment trucks from local pickup and
// delivery vans.
type VehicleType int

const (
	VehicleTypeUnknown VehicleType = iota

	// VehicleTypeShipment carries consolidated B2B shipments between branches.
	VehicleTypeShipment

	// VehicleTypePickupDelivery runs scheduled pickup and delivery rounds around
	// one branch.
	VehicleTypePickupDelivery
)

func getVehicleTypeNames() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleTypeShipment:       "shipment",
		VehicleTypePickupDelivery: "pickupDelivery",
	}
}

// VehicleTypeFromString parses a vehicle type from its string representation.
func VehicleTypeFromString(value string) (VehicleType, error) {
	for vehicleType, name := range getVehicleTypeNames() {
		if name == value {
			return vehicleType, nil
		}
	}
	return VehicleTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicleType",
		fmt.Errorf("unknown vehicle type %q", value),
	)
}

// Validate checks that the vehicle type is one of the known values.
func (t VehicleType) Validate() error {
	if _, ok := getVehicleTypeNames()[t]; !ok {
		return errs.NewValueIsInvalidError("vehicleType")
	}
	return nil
}

func (t VehicleType) String() string {
	if name, ok := getVehicleTypeNames()[t]; ok {
		return name
	}
	return "unknown"
}

// Vehicle is a transport asset of the branch network. It declares hard volume
// and weight capabilities that every schedule and shipment assignment is checked
// against, and an availability flag claimed exclusively by at most one active
// shipment at a time.
//
// The loadedAvailable snapshot records the availability read from storage, so
// the persistence layer can compare-and-set it and reject concurrent claims.
type Vehicle struct {
	// id is the unique identifier of the vehicle
	id kernel.UUID

	// registrationNo is the vehicle's plate number
	registrationNo string

	// vehicleType separates shipment trucks from pickup/delivery vans
	vehicleType VehicleType

	// branchCodes are the branches the vehicle operates from
	branchCodes []string

	// capableVolume is the maximum load volume in cubic meters
	capableVolume float64

	// capableWeight is the maximum load weight in kilograms
	capableWeight float64

	// available is false while the vehicle is engaged in an active shipment
	available bool

	// loadedAvailable is the availability read from storage
	loadedAvailable bool

	// guard ensures the vehicle was properly constructed
	guard guard.ConstructorGuard
}

// NewVehicle registers a vehicle. New vehicles start available.
func NewVehicle(
	id kernel.UUID,
	registrationNo string,
	vehicleType VehicleType,
	branchCodes []string,
	capableVolume float64,
	capableWeight float64,
) (*Vehicle, error) {
	vehicle := &Vehicle{
		available:       true,
		loadedAvailable: true,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		vehicle.setID(id),
		vehicle.setRegistrationNo(registrationNo),
		vehicle.setVehicleType(vehicleType),
		vehicle.setBranchCodes(branchCodes),
		vehicle.setCapabilities(capableVolume, capableWeight),
	); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// RestoreVehicle reconstructs a vehicle from persistent storage, keeping the
// persisted availability as the compare-and-set baseline.
func RestoreVehicle(
	id kernel.UUID,
	registrationNo string,
	vehicleType VehicleType,
	branchCodes []string,
	capableVolume float64,
	capableWeight float64,
	available bool,
) (*Vehicle, error) {
	vehicle := &Vehicle{
		available:       available,
		loadedAvailable: available,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		vehicle.setID(id),
		vehicle.setRegistrationNo(registrationNo),
		vehicle.setVehicleType(vehicleType),
		vehicle.setBranchCodes(branchCodes),
		vehicle.setCapabilities(capableVolume, capableWeight),
	); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// Validate ensures the Vehicle was created through a factory function.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// IsEqual compares two vehicles by their unique identifiers.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID { return v.id }

// RegistrationNo returns the vehicle's plate number.
func (v *Vehicle) RegistrationNo() string { return v.registrationNo }

// Type returns whether the vehicle runs shipments or pickup/delivery rounds.
func (v *Vehicle) Type() VehicleType { return v.vehicleType }

// BranchCodes returns the branches the vehicle operates from.
func (v *Vehicle) BranchCodes() []string { return v.branchCodes }

// CapableVolume returns the maximum load volume in cubic meters.
func (v *Vehicle) CapableVolume() float64 { return v.capableVolume }

// CapableWeight returns the maximum load weight in kilograms.
func (v *Vehicle) CapableWeight() float64 { return v.capableWeight }

// IsAvailable reports whether the vehicle is free to take a shipment.
func (v *Vehicle) IsAvailable() bool { return v.available }

// LoadedAvailability returns the availability read from storage. The persistence
// layer conditions its update on this value to reject concurrent claims.
func (v *Vehicle) LoadedAvailability() bool { return v.loadedAvailable }

// ServesBranch reports whether the vehicle operates from the given branch.
func (v *Vehicle) ServesBranch(code string) bool {
	for _, branchCode := range v.branchCodes {
		if branchCode == code {
			return true
		}
	}
	return false
}

// Claim marks the vehicle as engaged by a shipment. Claiming an engaged vehicle
// is rejected with a VehicleUnavailableError.
func (v *Vehicle) Claim() error {
	if !v.available {
		return errs.NewVehicleUnavailableError(v.registrationNo)
	}

	v.available = false
	return nil
}

// Release frees the vehicle after its shipment completes. Releasing an already
// free vehicle is a no-op.
func (v *Vehicle) Release() {
	v.available = true
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setRegistrationNo(registrationNo string) error {
	if registrationNo == "" {
		return ErrRegistrationNoIsRequired
	}
	v.registrationNo = registrationNo
	return nil
}

func (v *Vehicle) setVehicleType(vehicleType VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	v.vehicleType = vehicleType
	return nil
}

func (v *Vehicle) setBranchCodes(branchCodes []string) error {
	if len(branchCodes) == 0 {
		return ErrBranchCodesAreRequired
	}
	for _, code := range branchCodes {
		if code == "" {
			return ErrBranchCodesAreRequired
		}
	}
	v.branchCodes = branchCodes
	return nil
}

func (v *Vehicle) setCapabilities(capableVolume, capableWeight float64) error {
	if capableVolume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capableVolume",
			fmt.Errorf("%g is not greater than 0", capableVolume),
		)
	}
	if capableWeight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capableWeight",
			fmt.Errorf("%g is not greater than 0", capableWeight),
		)
	}
	v.capableVolume = capableVolume
	v.capableWeight = capableWeight
	return nil
}
