package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate, including its
	// payment record.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingNo retrieves a parcel by its customer-facing tracking number.
	GetByTrackingNo(ctx context.Context, trackingNo string) (*parcel.Parcel, error)

	// GetAllByShipment retrieves every parcel loaded on a shipment. Shipment
	// transitions use this to cascade bulk status changes.
	GetAllByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*parcel.Parcel, error)

	// GetAllPendingPickup retrieves placed pickup parcels that are not yet on a
	// pickup round. Used by the pickup assignment job.
	GetAllPendingPickup(ctx context.Context) ([]*parcel.Parcel, error)
}
