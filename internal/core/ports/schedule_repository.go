package ports

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"
)

// ScheduleRepository defines the persistence contract for schedule buckets.
//
// Buckets are unique per (vehicle, date, slot, type); the storage layer enforces
// that with a unique index. Update must condition the totals write on the totals
// the bucket was loaded with, so concurrent assignments into the same bucket
// cannot oversell capacity: the losing update fails and the caller retries or
// rejects.
type ScheduleRepository interface {
	// Add persists a new schedule bucket. A concurrent insert of the same bucket
	// key fails on the unique index.
	Add(ctx context.Context, aggregate *vehicle.Schedule) error

	// Update persists changes to an existing bucket. The totals write is
	// conditioned on the loaded totals.
	Update(ctx context.Context, aggregate *vehicle.Schedule) error

	// Get retrieves a schedule bucket by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Schedule, error)

	// GetByBucket retrieves the bucket for a vehicle, date, slot, and type.
	GetByBucket(ctx context.Context, vehicleID kernel.UUID, date time.Time, slot vehicle.TimeSlot, scheduleType vehicle.ScheduleType) (*vehicle.Schedule, error)

	// GetAllByVehicleInRange retrieves every bucket of a vehicle between two
	// dates inclusive. Used by the schedule summary query.
	GetAllByVehicleInRange(ctx context.Context, vehicleID kernel.UUID, from, to time.Time) ([]*vehicle.Schedule, error)
}
