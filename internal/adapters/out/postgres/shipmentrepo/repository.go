package shipmentrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment and its manifest to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment. The manifest is rewritten wholesale:
// parcels removed while the shipment was still Pending must disappear from
// shipment_loads, which association saves do not do.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("Loads").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Where("shipment_id = ?", dto.ID).Delete(&LoadDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Loads) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Loads).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).Preload("Loads").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByDriver retrieves the driver's shipment that has not reached
// Completed. Returns an ObjectNotFoundError when the driver is free, which is
// the answer the exclusivity check wants.
func (r *GormShipmentRepository) GetActiveByDriver(ctx context.Context, driverID string) (*shipment.Shipment, error) {
	if driverID == "" {
		return nil, errs.NewValueIsRequiredError("driverId")
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Loads").
		First(&dto, "driver_id = ? AND status != ?", driverID, shipment.StatusCompleted.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", driverID)
		}
		return nil, err
	}

	return toDomain(dto)
}
