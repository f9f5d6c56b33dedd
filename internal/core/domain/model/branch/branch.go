// Package branch contains the Branch entity: a physical hub/office node in the
// distribution network. Branches are referenced by parcels, vehicles, schedules,
// and shipments through their business code (e.g. "B001"), and change only through
// explicit administrative edits.
package branch

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	// ErrBranchIsNotConstructed is returned when a Branch instance was not created
	// through the NewBranch or RestoreBranch factory functions.
	ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

	// ErrCodeIsRequired is returned when attempting to create a branch without a code.
	ErrCodeIsRequired = errs.NewValueIsRequiredError("code")

	// ErrNameIsRequired is returned when attempting to create a branch without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Branch represents a hub in the distribution network. It is identified by a
// unique business code used in the distance table and on parcel routes.
type Branch struct {
	// id is the unique identifier of the branch
	id kernel.UUID

	// code is the business key ("B001") used by the route graph
	code string

	// name is the human-readable branch name
	name string

	// city is the city the branch operates in
	city string

	// address is the street address of the branch office
	address string

	// phone is the branch contact number
	phone string

	// guard ensures the branch was properly constructed
	guard guard.ConstructorGuard
}

// NewBranch creates a Branch after validating its identity and code.
// City, address, and phone are directory details and may be empty.
func NewBranch(id kernel.UUID, code, name, city, address, phone string) (*Branch, error) {
	branch := &Branch{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		branch.setID(id),
		branch.setCode(code),
		branch.setName(name),
	); err != nil {
		return nil, err
	}

	branch.city = city
	branch.address = address
	branch.phone = phone
	return branch, nil
}

// RestoreBranch reconstructs a Branch from persistent storage.
func RestoreBranch(id kernel.UUID, code, name, city, address, phone string) (*Branch, error) {
	return NewBranch(id, code, name, city, address, phone)
}

// Validate ensures the Branch was created through a factory function.
func (b *Branch) Validate() error {
	if b == nil {
		return ErrBranchIsNotConstructed
	}
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

// IsEqual compares two branches by their unique identifiers.
func (b *Branch) IsEqual(other *Branch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the branch's unique identifier.
func (b *Branch) ID() kernel.UUID {
	return b.id
}

// Code returns the branch business code used in routing and pricing.
func (b *Branch) Code() string {
	return b.code
}

// Name returns the branch name.
func (b *Branch) Name() string {
	return b.name
}

// City returns the city the branch operates in.
func (b *Branch) City() string {
	return b.city
}

// Address returns the branch street address.
func (b *Branch) Address() string {
	return b.address
}

// Phone returns the branch contact number.
func (b *Branch) Phone() string {
	return b.phone
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}
	b.code = code
	return nil
}

func (b *Branch) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	b.name = name
	return nil
}
