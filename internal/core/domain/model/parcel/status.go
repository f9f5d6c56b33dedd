package parcel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel. It implements a state machine
// over a central transition table; which edges are legal for a concrete parcel
// additionally depends on its (submittingType, receivingType) pair, enforced by
// the Parcel aggregate.
//
// Happy path:
//
//	OrderPlaced ─> PendingPickup ─> PickedUp ─> ArrivedAtDistributionCenter
//	    │ (drop-off/branch) ──────────────────────────┘
//	    └─> ... ─> ShipmentAssigned ─> InTransit ─> ArrivedAtCollectionCenter
//	                                       ┌──────────────┴──────────────┐
//	                            DeliveryDispatched ─> Delivered   (collected)
//
// ArrivedAtCollectionCenter and DeliveryDispatched may also branch to the
// exception states NotAccepted, WrongAddress, and Returned. Delivered and the
// exception states are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOrderPlaced is the unique initial state stamped at order placement.
	StatusOrderPlaced

	// StatusPendingPickup means a pickup has been scheduled at the sender's address.
	StatusPendingPickup

	// StatusPickedUp means a driver confirmed collection from the sender.
	StatusPickedUp

	// StatusArrivedAtDistributionCenter means the parcel was scanned in at its origin hub.
	StatusArrivedAtDistributionCenter

	// StatusShipmentAssigned means the parcel was consolidated into a B2B shipment.
	StatusShipmentAssigned

	// StatusInTransit means the parcel is moving between branches.
	StatusInTransit

	// StatusArrivedAtCollectionCenter means the parcel reached its destination branch.
	StatusArrivedAtCollectionCenter

	// StatusDeliveryDispatched means the parcel is out for doorstep delivery.
	StatusDeliveryDispatched

	// StatusDelivered is the terminal success state.
	StatusDelivered

	// StatusNotAccepted is a terminal state: the receiver refused the parcel.
	StatusNotAccepted

	// StatusWrongAddress is a terminal state: the delivery address was invalid.
	StatusWrongAddress

	// StatusReturned is a terminal state: the parcel went back to the sender.
	StatusReturned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:                     "Unknown",
		StatusOrderPlaced:                 "OrderPlaced",
		StatusPendingPickup:               "PendingPickup",
		StatusPickedUp:                    "PickedUp",
		StatusArrivedAtDistributionCenter: "ArrivedAtDistributionCenter",
		StatusShipmentAssigned:            "ShipmentAssigned",
		StatusInTransit:                   "InTransit",
		StatusArrivedAtCollectionCenter:   "ArrivedAtCollectionCenter",
		StatusDeliveryDispatched:          "DeliveryDispatched",
		StatusDelivered:                   "Delivered",
		StatusNotAccepted:                 "NotAccepted",
		StatusWrongAddress:                "WrongAddress",
		StatusReturned:                    "Returned",
	}
}

// getTransitionTable returns the set of legal next states per state. Edges that
// further depend on the parcel's intake pair are filtered by Parcel.ApplyEvent.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		StatusOrderPlaced:                 {StatusPendingPickup, StatusArrivedAtDistributionCenter},
		StatusPendingPickup:               {StatusPickedUp},
		StatusPickedUp:                    {StatusArrivedAtDistributionCenter},
		StatusArrivedAtDistributionCenter: {StatusShipmentAssigned},
		StatusShipmentAssigned:            {StatusInTransit},
		StatusInTransit:                   {StatusArrivedAtCollectionCenter},
		StatusArrivedAtCollectionCenter: {
			StatusDeliveryDispatched, StatusDelivered,
			StatusNotAccepted, StatusWrongAddress, StatusReturned,
		},
		StatusDeliveryDispatched: {
			StatusDelivered, StatusNotAccepted, StatusWrongAddress, StatusReturned,
		},
		StatusDelivered:    {},
		StatusNotAccepted:  {},
		StatusWrongAddress: {},
		StatusReturned:     {},
	}
}

// getHappyPath returns the linear ordering used by the progress projection.
func getHappyPath() []Status {
	return []Status{
		StatusOrderPlaced,
		StatusPendingPickup,
		StatusPickedUp,
		StatusArrivedAtDistributionCenter,
		StatusShipmentAssigned,
		StatusInTransit,
		StatusArrivedAtCollectionCenter,
		StatusDeliveryDispatched,
		StatusDelivered,
	}
}

// Validate checks the status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := getTransitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the human-readable status name.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as stored in the database.
func StatusFromString(value string) (Status, error) {
	for s, str := range getStatusStrings() {
		if str == value {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", value),
	)
}

// CanTransitionTo reports whether the transition table has an edge from s to next.
// Re-applying the current status is never legal: replayed events must be rejected,
// not silently accepted.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range getTransitionTable()[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	nexts, ok := getTransitionTable()[s]
	return ok && len(nexts) == 0
}

// IsException reports whether the status sits outside the linear happy path
// (refusal, bad address, return). Exception states are reported separately from
// the progress percentage.
func (s Status) IsException() bool {
	return s == StatusNotAccepted || s == StatusWrongAddress || s == StatusReturned
}

// Progress maps the status onto the ordered happy path as index/(N-1)*100.
// The second return value is false for exception states and unknown values, which
// have no position on the linear ordering.
func (s Status) Progress() (float64, bool) {
	path := getHappyPath()
	for i, step := range path {
		if step == s {
			return float64(i) / float64(len(path)-1) * 100, true
		}
	}
	return 0, false
}

// Event identifies the external trigger of a parcel status transition: QR scans at
// hubs, scheduler assignments, and driver updates. Every event targets exactly one
// status; legality of the move is decided by the transition table and the parcel's
// intake pair.
type Event int

const (
	EventUnknown Event = iota

	// EventPickupScheduled fires when the scheduler books the parcel into a pickup slot.
	EventPickupScheduled

	// EventPickedUp fires when the driver confirms collection.
	EventPickedUp

	// EventArrivedAtHub fires on the origin hub intake scan.
	EventArrivedAtHub

	// EventShipmentAssigned fires when the parcel is consolidated into a shipment.
	EventShipmentAssigned

	// EventDeparted fires when the shipment leaves the origin hub.
	EventDeparted

	// EventArrivedAtCollectionCenter fires on the destination branch scan.
	EventArrivedAtCollectionCenter

	// EventOutForDelivery fires when the scheduler books the parcel into a delivery slot.
	EventOutForDelivery

	// EventDelivered fires on doorstep handover or customer collection.
	EventDelivered

	// EventNotAccepted fires when the receiver refuses the parcel.
	EventNotAccepted

	// EventWrongAddress fires when the delivery address turns out invalid.
	EventWrongAddress

	// EventReturned fires when the parcel is sent back to the sender.
	EventReturned
)

func getEventTargets() map[Event]Status {
	return map[Event]Status{
		EventPickupScheduled:           StatusPendingPickup,
		EventPickedUp:                  StatusPickedUp,
		EventArrivedAtHub:              StatusArrivedAtDistributionCenter,
		EventShipmentAssigned:          StatusShipmentAssigned,
		EventDeparted:                  StatusInTransit,
		EventArrivedAtCollectionCenter: StatusArrivedAtCollectionCenter,
		EventOutForDelivery:            StatusDeliveryDispatched,
		EventDelivered:                 StatusDelivered,
		EventNotAccepted:               StatusNotAccepted,
		EventWrongAddress:              StatusWrongAddress,
		EventReturned:                  StatusReturned,
	}
}

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventPickupScheduled:           "pickup_scheduled",
		EventPickedUp:                  "picked_up",
		EventArrivedAtHub:              "arrived_at_hub",
		EventShipmentAssigned:          "shipment_assigned",
		EventDeparted:                  "departed",
		EventArrivedAtCollectionCenter: "arrived_at_collection_center",
		EventOutForDelivery:            "out_for_delivery",
		EventDelivered:                 "delivered",
		EventNotAccepted:               "not_accepted",
		EventWrongAddress:              "wrong_address",
		EventReturned:                  "returned",
	}
}

// EventFromString parses an event label as carried on the wire.
func EventFromString(s string) (Event, error) {
	for e, str := range getEventStrings() {
		if str == s {
			return e, nil
		}
	}
	return EventUnknown, errs.NewValueIsInvalidErrorWithCause(
		"event", fmt.Errorf("%q is not a valid parcel event", s),
	)
}

// Validate checks the event is one of the defined values.
func (e Event) Validate() error {
	if _, ok := getEventTargets()[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"event", fmt.Errorf("%d is not a valid parcel event", e),
		)
	}
	return nil
}

// String returns the event label.
func (e Event) String() string {
	if s, ok := getEventStrings()[e]; ok {
		return s
	}
	return "unknown"
}

// TargetStatus returns the status this event drives the parcel toward.
func (e Event) TargetStatus() Status {
	if target, ok := getEventTargets()[e]; ok {
		return target
	}
	return StatusUnknown
}
