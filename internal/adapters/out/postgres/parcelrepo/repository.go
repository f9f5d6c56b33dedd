package parcelrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel and its payment record to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
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

// Update saves an existing parcel to the database, including its payment row.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update the payment row
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).Preload("Payment").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNo retrieves a parcel by its customer-facing tracking number.
func (r *GormParcelRepository) GetByTrackingNo(ctx context.Context, trackingNo string) (*parcel.Parcel, error) {
	if trackingNo == "" {
		return nil, errs.NewValueIsRequiredError("trackingNo")
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).Preload("Payment").First(&dto, "tracking_no = ?", trackingNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingNo", trackingNo)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByShipment retrieves every parcel loaded on a shipment.
func (r *GormParcelRepository) GetAllByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Preload("Payment").
		Find(&dtos, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllPendingPickup retrieves placed pickup parcels that are not yet on a
// pickup round. These are the parcels the pickup assignment job plans.
func (r *GormParcelRepository) GetAllPendingPickup(ctx context.Context) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("status = ? AND submitting_type = ?",
			parcel.StatusOrderPlaced.String(), parcel.SubmittingPickup.String()).
		Order("placed_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ParcelDTO) ([]*parcel.Parcel, error) {
	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}
