package ports

import (
	"context"
	"time"
)

// ParcelStatusChanged is the integration event published after a parcel
// transition commits. Downstream consumers (notifications, reporting) react to
// it; the core never waits on them.
type ParcelStatusChanged struct {
	ParcelID   string    `json:"parcelId"`
	TrackingNo string    `json:"trackingNo"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ShipmentAdvanced is the integration event published after a shipment
// transition commits, including the cascade it triggered.
type ShipmentAdvanced struct {
	ShipmentID      string    `json:"shipmentId"`
	Status          string    `json:"status"`
	ParcelCount     int       `json:"parcelCount"`
	ReleasedVehicle string    `json:"releasedVehicle,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// EventPublisher publishes integration events to the message broker after the
// owning transaction commits. Publish failures are logged by the caller, never
// rolled into the business result.
type EventPublisher interface {
	PublishParcelStatusChanged(ctx context.Context, event ParcelStatusChanged) error
	PublishShipmentAdvanced(ctx context.Context, event ShipmentAdvanced) error
}
