package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetActiveByDriver retrieves the driver's shipment that has not reached
	// Completed, or an ObjectNotFoundError if the driver is free. Driver
	// exclusivity checks use this before assignment.
	GetActiveByDriver(ctx context.Context, driverID string) (*shipment.Shipment, error)
}
