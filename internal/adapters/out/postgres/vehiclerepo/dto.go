// Package vehiclerepo provides data transfer objects and mapping functions for vehicle persistence.
// This package implements the repository pattern for the vehicle domain aggregate, handling
// the conversion between domain entities and database representations.
package vehiclerepo

import (
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// VehicleDTO represents the database structure for persisting vehicle aggregates.
// Branch codes are stored as a native text array; availability is the flag the
// compare-and-set in Update conditions on.
type VehicleDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RegistrationNo string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	VehicleType    string         `gorm:"type:varchar(32);not null;index"`
	BranchCodes    pq.StringArray `gorm:"type:text[];not null"`
	CapableVolume  float64        `gorm:"not null"`
	CapableWeight  float64        `gorm:"not null"`
	Available      bool           `gorm:"not null;index"`
}

// TableName specifies the database table name for vehicle entities.
// Overrides GORM's default naming convention to use "vehicles".
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle domain aggregate to its database representation.
func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:             aggregate.ID().Bytes(),
		RegistrationNo: aggregate.RegistrationNo(),
		VehicleType:    aggregate.Type().String(),
		BranchCodes:    pq.StringArray(aggregate.BranchCodes()),
		CapableVolume:  aggregate.CapableVolume(),
		CapableWeight:  aggregate.CapableWeight(),
		Available:      aggregate.IsAvailable(),
	}
}

// toDomain converts a database DTO to a vehicle domain aggregate.
// The restored aggregate remembers the loaded availability for the next compare-and-set.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicleType, err := vehicle.VehicleTypeFromString(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(
		id,
		dto.RegistrationNo,
		vehicleType,
		[]string(dto.BranchCodes),
		dto.CapableVolume,
		dto.CapableWeight,
		dto.Available,
	)
}
