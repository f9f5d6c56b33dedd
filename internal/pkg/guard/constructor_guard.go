// Package guard provides the constructor-guard pattern used by domain objects to
// detect zero-value instances that bypassed their constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when no
// specific error is supplied for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a struct
// and initialize it with NewConstructorGuard inside the constructor; the zero value
// fails Validate, so structs created by direct initialization are detectable.
//
// Example:
//
//	type Branch struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewBranch(code string) (Branch, error) {
//	    if code == "" {
//	        return Branch{}, errors.New("code is required")
//	    }
//	    return Branch{code: code, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (b Branch) Validate() error {
//	    return b.guard.Validate(ErrBranchIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its holder as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the holder was built through its constructor.
// For a zero-value guard it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
