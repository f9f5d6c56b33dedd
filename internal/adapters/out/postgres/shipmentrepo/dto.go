// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// This package implements the repository pattern for the shipment domain aggregate, handling
// the conversion between domain entities and database representations.
package shipmentrepo

import (
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// The manifest lives in the shipment_loads table; totals and the parcel count
// are denormalized on the shipment row and checked against the manifest on load.
type ShipmentDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SourceBranch      string     `gorm:"type:varchar(16);not null;index"`
	DestinationBranch string     `gorm:"type:varchar(16);not null;index"`
	CurrentLocation   string     `gorm:"type:varchar(16)"`
	VehicleID         *uuid.UUID `gorm:"type:uuid;index"`
	DriverID          string     `gorm:"type:varchar(64);index"`
	Status            string     `gorm:"type:varchar(32);not null;index"`
	TotalVolume       float64    `gorm:"not null"`
	TotalWeight       float64    `gorm:"not null"`
	TotalDistance     float64    `gorm:"not null"`
	ParcelCount       int        `gorm:"not null"`
	Loads             []LoadDTO  `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// LoadDTO represents one manifest line: a parcel on a shipment with the
// capacity it consumes.
type LoadDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Volume     float64   `gorm:"not null"`
	Weight     float64   `gorm:"not null"`
}

// TableName specifies the database table name for manifest lines.
// Overrides GORM's default naming convention to use "shipment_loads".
func (LoadDTO) TableName() string {
	return "shipment_loads"
}

// fromDomain converts a shipment domain aggregate to its database representation.
// Maps the manifest and the denormalized totals.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()

	var vehicleID *uuid.UUID
	if id := aggregate.Vehicle(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}

	loads := make([]LoadDTO, 0, len(aggregate.Loads()))
	for _, load := range aggregate.Loads() {
		loads = append(loads, LoadDTO{
			ShipmentID: shipmentID,
			ParcelID:   load.ParcelID.Bytes(),
			Volume:     load.Volume,
			Weight:     load.Weight,
		})
	}

	return ShipmentDTO{
		ID:                shipmentID,
		SourceBranch:      aggregate.SourceBranch(),
		DestinationBranch: aggregate.DestinationBranch(),
		CurrentLocation:   aggregate.CurrentLocation(),
		VehicleID:         vehicleID,
		DriverID:          aggregate.Driver(),
		Status:            aggregate.Status().String(),
		TotalVolume:       aggregate.TotalVolume(),
		TotalWeight:       aggregate.TotalWeight(),
		TotalDistance:     aggregate.TotalDistance(),
		ParcelCount:       aggregate.ParcelCount(),
		Loads:             loads,
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
// RestoreShipment cross-checks the recorded parcel count against the manifest.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleID = &vID
	}

	loads := make([]shipment.ParcelLoad, 0, len(dto.Loads))
	for _, loadDto := range dto.Loads {
		parcelID, loadErr := kernel.UUIDFromBytes(loadDto.ParcelID[:])
		if loadErr != nil {
			return nil, loadErr
		}
		loads = append(loads, shipment.ParcelLoad{
			ParcelID: parcelID,
			Volume:   loadDto.Volume,
			Weight:   loadDto.Weight,
		})
	}

	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		dto.SourceBranch,
		dto.DestinationBranch,
		dto.CurrentLocation,
		vehicleID,
		dto.DriverID,
		loads,
		status,
		dto.TotalVolume,
		dto.TotalWeight,
		dto.TotalDistance,
		dto.ParcelCount,
	)
}
