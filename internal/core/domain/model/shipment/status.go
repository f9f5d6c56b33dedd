package shipment

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Status is the lifecycle state of a B2B shipment. The lifecycle is linear:
//
//	Pending -> Verified -> InTransit -> Dispatched -> Completed
//
// There is no cancellation path; a shipment that exists moves forward or stays
// where it is.
type Status int

const (
	StatusUnknown Status = iota

	// StatusPending is the initial state: parcels are being consolidated and the
	// vehicle and driver are not yet locked in.
	StatusPending

	// StatusVerified means the manifest is confirmed and transport is assigned.
	StatusVerified

	// StatusInTransit means the vehicle has departed the source branch.
	StatusInTransit

	// StatusDispatched means the shipment arrived at the destination branch and
	// its parcels are handed over to local delivery.
	StatusDispatched

	// StatusCompleted is terminal: all parcels are handed over and the vehicle is
	// released back to the pool.
	StatusCompleted
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		StatusPending:    "Pending",
		StatusVerified:   "Verified",
		StatusInTransit:  "InTransit",
		StatusDispatched: "Dispatched",
		StatusCompleted:  "Completed",
	}
}

func getNextStatus() map[Status]Status {
	return map[Status]Status{
		StatusPending:    StatusVerified,
		StatusVerified:   StatusInTransit,
		StatusInTransit:  StatusDispatched,
		StatusDispatched: StatusCompleted,
	}
}

// StatusFromString parses a shipment status from its string representation.
func StatusFromString(value string) (Status, error) {
	for status, name := range getStatusNames() {
		if name == value {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shipmentStatus",
		fmt.Errorf("unknown shipment status %q", value),
	)
}

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	if _, ok := getStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidError("shipmentStatus")
	}
	return nil
}

func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "unknown"
}

// CanTransitionTo reports whether the target is the immediate next state.
func (s Status) CanTransitionTo(target Status) bool {
	next, ok := getNextStatus()[s]
	return ok && next == target
}

// Next returns the immediate next state. The second return value is false for
// Completed, which is terminal.
func (s Status) Next() (Status, bool) {
	next, ok := getNextStatus()[s]
	return next, ok
}

// IsTerminal reports whether the status has no further transitions.
func (s Status) IsTerminal() bool {
	_, ok := getNextStatus()[s]
	return s.Validate() == nil && !ok
}

// HoldsVehicle reports whether a shipment in this status keeps its assigned
// vehicle engaged.
func (s Status) HoldsVehicle() bool {
	switch s {
	case StatusVerified, StatusInTransit, StatusDispatched:
		return true
	default:
		return false
	}
}
