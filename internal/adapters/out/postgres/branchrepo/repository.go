package branchrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/branch"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM.
type GormBranchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBranchRepository creates a new GORM branch repository.
func NewGormBranchRepository(db *gorm.DB, tracker aggregateTracker) *GormBranchRepository {
	return &GormBranchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new branch to the database.
func (r *GormBranchRepository) Add(ctx context.Context, aggregate *branch.Branch) error {
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

// Update saves an existing branch to the database.
func (r *GormBranchRepository) Update(ctx context.Context, aggregate *branch.Branch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BranchDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a branch by ID.
func (r *GormBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a branch by its short code.
func (r *GormBranchRepository) GetByCode(ctx context.Context, code string) (*branch.Branch, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("branch code")
	}

	var dto BranchDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("branch code", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every branch in the network, ordered by code.
func (r *GormBranchRepository) GetAll(ctx context.Context) ([]*branch.Branch, error) {
	var dtos []BranchDTO
	if err := r.db.WithContext(ctx).Order("code").Find(&dtos).Error; err != nil {
		return nil, err
	}

	branches := make([]*branch.Branch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	return branches, nil
}
