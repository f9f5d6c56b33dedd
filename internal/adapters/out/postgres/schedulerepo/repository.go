package schedulerepo

import (
	"context"
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres error code for a unique index conflict.
const uniqueViolation = "23505"

// GormScheduleRepository implements ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormScheduleRepository creates a new GORM schedule repository.
func NewGormScheduleRepository(db *gorm.DB, tracker aggregateTracker) *GormScheduleRepository {
	return &GormScheduleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new schedule bucket to the database. When a concurrent
// transaction created the same bucket first, the insert hits the unique bucket
// index and fails with a ConsistencyViolationError; the caller re-reads the
// bucket and retries the assignment.
func (r *GormScheduleRepository) Add(ctx context.Context, aggregate *vehicle.Schedule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewConsistencyViolationError(
				"scheduleBucket", "bucket was created concurrently, re-read and retry",
			)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing schedule bucket. The write is conditioned on the
// totals the bucket was loaded with, so two assignments into the same bucket
// cannot both commit: the loser matches zero rows and fails with a
// ConsistencyViolationError.
func (r *GormScheduleRepository) Update(ctx context.Context, aggregate *vehicle.Schedule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loaded := aggregate.LoadedTotals()

	result := r.db.WithContext(ctx).
		Model(&ScheduleDTO{}).
		Where("id = ? AND total_volume = ? AND total_weight = ?", dto.ID, loaded.Volume, loaded.Weight).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).
			Model(&ScheduleDTO{}).
			Where("id = ?", dto.ID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return errs.NewObjectNotFoundError("schedule", aggregate.ID().String())
		}
		return errs.NewConsistencyViolationError(
			"scheduleTotals", "bucket was updated concurrently, re-read and retry",
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a schedule bucket by ID.
func (r *GormScheduleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Schedule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("schedule", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByBucket retrieves the bucket for a vehicle, date, slot, and type.
func (r *GormScheduleRepository) GetByBucket(
	ctx context.Context,
	vehicleID kernel.UUID,
	date time.Time,
	slot vehicle.TimeSlot,
	scheduleType vehicle.ScheduleType,
) (*vehicle.Schedule, error) {
	if err := vehicleID.Validate(); err != nil {
		return nil, err
	}

	day := date.UTC().Truncate(24 * time.Hour)

	var dto ScheduleDTO
	err := r.db.WithContext(ctx).
		First(&dto, "vehicle_id = ? AND date = ? AND slot = ? AND schedule_type = ?",
			vehicleID.Bytes(), day, slot.String(), scheduleType.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("schedule", vehicleID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByVehicleInRange retrieves every bucket of a vehicle between two dates
// inclusive, ordered by date and slot.
func (r *GormScheduleRepository) GetAllByVehicleInRange(
	ctx context.Context,
	vehicleID kernel.UUID,
	from, to time.Time,
) ([]*vehicle.Schedule, error) {
	if err := vehicleID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ScheduleDTO
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND date BETWEEN ? AND ?",
			vehicleID.Bytes(), from.UTC().Truncate(24*time.Hour), to.UTC().Truncate(24*time.Hour)).
		Order("date, slot").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	schedules := make([]*vehicle.Schedule, 0, len(dtos))
	for _, dto := range dtos {
		s, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		schedules = append(schedules, s)
	}

	return schedules, nil
}
