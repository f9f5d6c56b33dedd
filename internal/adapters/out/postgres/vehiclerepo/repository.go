package vehiclerepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVehicleRepository implements VehicleRepository using GORM.
type GormVehicleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormVehicleRepository creates a new GORM vehicle repository.
func NewGormVehicleRepository(db *gorm.DB, tracker aggregateTracker) *GormVehicleRepository {
	return &GormVehicleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new vehicle to the database.
func (r *GormVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
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

// Update saves an existing vehicle to the database. The write is conditioned on
// the availability flag the aggregate was loaded with, so two shipments racing
// for the same vehicle cannot both claim it: the loser's update matches zero
// rows and fails with a VehicleUnavailableError.
func (r *GormVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("id = ? AND available = ?", dto.ID, aggregate.LoadedAvailability()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).
			Model(&VehicleDTO{}).
			Where("id = ?", dto.ID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return errs.NewObjectNotFoundError("vehicle", aggregate.ID().String())
		}
		return errs.NewVehicleUnavailableError(aggregate.RegistrationNo())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a vehicle by ID.
func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRegistrationNo retrieves a vehicle by its plate number.
func (r *GormVehicleRepository) GetByRegistrationNo(ctx context.Context, registrationNo string) (*vehicle.Vehicle, error) {
	if registrationNo == "" {
		return nil, errs.NewValueIsRequiredError("registrationNo")
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "registration_no = ?", registrationNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("registrationNo", registrationNo)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailableByBranch retrieves free vehicles of a type operating from the
// given branch, ordered by plate number for deterministic packing.
func (r *GormVehicleRepository) GetAllAvailableByBranch(
	ctx context.Context,
	branchCode string,
	vehicleType vehicle.VehicleType,
) ([]*vehicle.Vehicle, error) {
	if branchCode == "" {
		return nil, errs.NewValueIsRequiredError("branchCode")
	}
	if err := vehicleType.Validate(); err != nil {
		return nil, err
	}

	var dtos []VehicleDTO
	if err := r.db.WithContext(ctx).
		Where("available AND vehicle_type = ? AND ? = ANY(branch_codes)", vehicleType.String(), branchCode).
		Order("registration_no").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	vehicles := make([]*vehicle.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}
