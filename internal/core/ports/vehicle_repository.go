package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for vehicle aggregates.
//
// Update must compare-and-set the availability flag against the value the
// aggregate was loaded with, so two shipments can never claim the same vehicle:
// the losing update fails with a VehicleUnavailableError.
type VehicleRepository interface {
	// Add persists a new vehicle aggregate to storage.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Update persists changes to an existing vehicle aggregate. The availability
	// write is conditioned on the loaded availability.
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetByRegistrationNo retrieves a vehicle by its plate number.
	GetByRegistrationNo(ctx context.Context, registrationNo string) (*vehicle.Vehicle, error)

	// GetAllAvailableByBranch retrieves free vehicles of a type operating from
	// the given branch.
	GetAllAvailableByBranch(ctx context.Context, branchCode string, vehicleType vehicle.VehicleType) ([]*vehicle.Vehicle, error)
}
