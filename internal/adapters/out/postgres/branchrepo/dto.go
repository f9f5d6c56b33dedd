// Package branchrepo provides data transfer objects and mapping functions for branch persistence.
package branchrepo

import (
	"parcelhub/internal/core/domain/model/branch"
	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BranchDTO represents the database structure for persisting branch records.
type BranchDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code    string    `gorm:"type:varchar(16);not null;uniqueIndex"`
	Name    string    `gorm:"type:varchar(255);not null"`
	City    string    `gorm:"type:varchar(255)"`
	Address string    `gorm:"type:varchar(512)"`
	Phone   string    `gorm:"type:varchar(32)"`
}

// TableName specifies the database table name for branch records.
// Overrides GORM's default naming convention to use "branches".
func (BranchDTO) TableName() string {
	return "branches"
}

func fromDomain(aggregate *branch.Branch) BranchDTO {
	return BranchDTO{
		ID:      aggregate.ID().Bytes(),
		Code:    aggregate.Code(),
		Name:    aggregate.Name(),
		City:    aggregate.City(),
		Address: aggregate.Address(),
		Phone:   aggregate.Phone(),
	}
}

func toDomain(dto BranchDTO) (*branch.Branch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return branch.RestoreBranch(id, dto.Code, dto.Name, dto.City, dto.Address, dto.Phone)
}
