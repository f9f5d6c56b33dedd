// Package schedulerepo provides data transfer objects and mapping functions for schedule persistence.
// This package implements the repository pattern for schedule buckets, handling the conversion
// between domain entities and database representations.
//
// The bucket key (vehicle, date, slot, type) is protected by a unique index, so
// two transactions creating the same bucket cannot both succeed. Totals updates
// are compare-and-set against the totals the bucket was loaded with, so
// concurrent assignments cannot oversell the vehicle's capacity.
package schedulerepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ScheduleDTO represents the database structure for persisting schedule buckets.
// Parcel IDs are stored as a native text array; the accumulated totals are
// denormalized for the capacity compare-and-set and for summary queries.
type ScheduleDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	VehicleID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_bucket"`
	Date         time.Time      `gorm:"not null;uniqueIndex:idx_schedule_bucket"`
	Slot         string         `gorm:"type:varchar(16);not null;uniqueIndex:idx_schedule_bucket"`
	ScheduleType string         `gorm:"type:varchar(16);not null;uniqueIndex:idx_schedule_bucket"`
	ParcelIDs    pq.StringArray `gorm:"type:text[]"`
	TotalVolume  float64        `gorm:"not null"`
	TotalWeight  float64        `gorm:"not null"`
}

// TableName specifies the database table name for schedule buckets.
// Overrides GORM's default naming convention to use "schedules".
func (ScheduleDTO) TableName() string {
	return "schedules"
}

// fromDomain converts a schedule domain aggregate to its database representation.
func fromDomain(aggregate *vehicle.Schedule) ScheduleDTO {
	parcelIDs := make(pq.StringArray, 0, len(aggregate.ParcelIDs()))
	for _, id := range aggregate.ParcelIDs() {
		parcelIDs = append(parcelIDs, id.String())
	}

	return ScheduleDTO{
		ID:           aggregate.ID().Bytes(),
		VehicleID:    aggregate.VehicleID().Bytes(),
		Date:         aggregate.Date(),
		Slot:         aggregate.Slot().String(),
		ScheduleType: aggregate.Type().String(),
		ParcelIDs:    parcelIDs,
		TotalVolume:  aggregate.Totals().Volume,
		TotalWeight:  aggregate.Totals().Weight,
	}
}

// toDomain converts a database DTO to a schedule domain aggregate.
// The restored bucket remembers the loaded totals for the next compare-and-set.
func toDomain(dto ScheduleDTO) (*vehicle.Schedule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	slot, err := vehicle.TimeSlotFromString(dto.Slot)
	if err != nil {
		return nil, err
	}

	scheduleType, err := vehicle.ScheduleTypeFromString(dto.ScheduleType)
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.ParcelIDs))
	for _, raw := range dto.ParcelIDs {
		parcelID, parcelErr := kernel.UUIDFromString(raw)
		if parcelErr != nil {
			return nil, parcelErr
		}
		parcelIDs = append(parcelIDs, parcelID)
	}

	return vehicle.RestoreSchedule(
		id,
		vehicleID,
		dto.Date,
		slot,
		scheduleType,
		parcelIDs,
		vehicle.Totals{Volume: dto.TotalVolume, Weight: dto.TotalWeight},
	)
}
