package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/branch"
	"parcelhub/internal/core/domain/model/kernel"
)

// BranchRepository defines the persistence contract for branch records.
type BranchRepository interface {
	// Add persists a new branch to storage.
	Add(ctx context.Context, aggregate *branch.Branch) error

	// Update persists changes to an existing branch.
	Update(ctx context.Context, aggregate *branch.Branch) error

	// Get retrieves a branch by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error)

	// GetByCode retrieves a branch by its short code.
	GetByCode(ctx context.Context, code string) (*branch.Branch, error)

	// GetAll retrieves every branch in the network.
	GetAll(ctx context.Context) ([]*branch.Branch, error)
}
