package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the unwrap targets for all typed errors in this package.
// Callers classify failures with errors.Is against these values.
var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrVersionIsInvalid     = errors.New("version is invalid")
	ErrRouteNotFound        = errors.New("route not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrVehicleUnavailable   = errors.New("vehicle unavailable")
	ErrDriverUnavailable    = errors.New("driver unavailable")
	ErrConsistencyViolation = errors.New("consistency violation")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that an entity could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value lies outside its permitted range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("value is invalid: %s is %s, min value is %s, max value is %s",
		sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", sanitize(e.Cause))
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates a malformed or unsupported version value.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// RouteNotFoundError indicates that the branch distance table has no entry for a
// branch pair. This is a configuration fault: it is surfaced to the caller and is
// never retried automatically.
type RouteNotFoundError struct {
	FromCode string
	ToCode   string
}

// NewRouteNotFoundError creates a RouteNotFoundError for the given branch pair.
func NewRouteNotFoundError(fromCode, toCode string) *RouteNotFoundError {
	return &RouteNotFoundError{FromCode: fromCode, ToCode: toCode}
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrRouteNotFound, e.FromCode, e.ToCode)
}

func (e *RouteNotFoundError) Unwrap() error {
	return ErrRouteNotFound
}

// InvalidTransitionError indicates an illegal status change. The entity's state is
// left unchanged; re-applying an already satisfied transition is also rejected with
// this error rather than silently accepted.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given entity and states.
func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CapacityExceededError indicates that an assignment would push a schedule past the
// vehicle's declared volume or weight capability. The assignment is rejected and
// the schedule totals are left unchanged.
type CapacityExceededError struct {
	Dimension string
	Current   float64
	Added     float64
	Capacity  float64
}

// NewCapacityExceededError creates a CapacityExceededError for the given dimension.
// Dimension names which capability was violated ("volume" or "weight").
func NewCapacityExceededError(dimension string, current, added, capacity float64) *CapacityExceededError {
	return &CapacityExceededError{Dimension: dimension, Current: current, Added: added, Capacity: capacity}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s %g + %g exceeds capability %g",
		ErrCapacityExceeded, e.Dimension, e.Current, e.Added, e.Capacity)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// VehicleUnavailableError indicates an attempt to claim a vehicle that is already
// engaged in an active shipment.
type VehicleUnavailableError struct {
	RegistrationNo string
}

// NewVehicleUnavailableError creates a VehicleUnavailableError for the given vehicle.
func NewVehicleUnavailableError(registrationNo string) *VehicleUnavailableError {
	return &VehicleUnavailableError{RegistrationNo: registrationNo}
}

func (e *VehicleUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrVehicleUnavailable, e.RegistrationNo)
}

func (e *VehicleUnavailableError) Unwrap() error {
	return ErrVehicleUnavailable
}

// DriverUnavailableError indicates an attempt to assign a driver who already has an
// active shipment.
type DriverUnavailableError struct {
	DriverID string
}

// NewDriverUnavailableError creates a DriverUnavailableError for the given driver.
func NewDriverUnavailableError(driverID string) *DriverUnavailableError {
	return &DriverUnavailableError{DriverID: driverID}
}

func (e *DriverUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDriverUnavailable, e.DriverID)
}

func (e *DriverUnavailableError) Unwrap() error {
	return ErrDriverUnavailable
}

// ConsistencyViolationError indicates that a denormalized aggregate (shipment totals,
// parcel counts) disagrees with the underlying records. It is logged and surfaced,
// never silently patched.
type ConsistencyViolationError struct {
	ParamName string
	Detail    string
}

// NewConsistencyViolationError creates a ConsistencyViolationError with a detail message.
func NewConsistencyViolationError(paramName, detail string) *ConsistencyViolationError {
	return &ConsistencyViolationError{ParamName: paramName, Detail: detail}
}

func (e *ConsistencyViolationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConsistencyViolation, e.ParamName, e.Detail)
}

func (e *ConsistencyViolationError) Unwrap() error {
	return ErrConsistencyViolation
}
