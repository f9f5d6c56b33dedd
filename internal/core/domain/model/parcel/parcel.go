package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through the NewParcel or RestoreParcel factory functions.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrTrackingNoIsRequired is returned when attempting to create a parcel without
	// a tracking number.
	ErrTrackingNoIsRequired = errs.NewValueIsRequiredError("trackingNo")

	// ErrBranchCodeIsRequired is returned when a parcel is missing its origin or
	// destination branch code.
	ErrBranchCodeIsRequired = errs.NewValueIsRequiredError("branch code")

	// ErrPaymentIsRequired is returned when a parcel is created without its payment
	// record. Every parcel carries exactly one active payment.
	ErrPaymentIsRequired = errs.NewValueIsRequiredError("payment")
)

// Contact is a value object holding one party of a parcel: the sender or the
// receiver.
type Contact struct {
	name    string
	phone   string
	address string
}

// NewContact creates a contact after validating that name and phone are present.
// The address may be empty for branch-to-branch parcels.
func NewContact(name, phone, address string) (Contact, error) {
	if name == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact name")
	}
	if phone == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact phone")
	}
	return Contact{name: name, phone: phone, address: address}, nil
}

// Name returns the contact's name.
func (c Contact) Name() string { return c.name }

// Phone returns the contact's phone number.
func (c Contact) Phone() string { return c.phone }

// Address returns the contact's street address.
func (c Contact) Address() string { return c.address }

// Timestamps records when each lifecycle stage was reached. Fields are nil until
// the corresponding transition happens. PlacedAt is always set.
type Timestamps struct {
	PlacedAt              time.Time
	PickupScheduledAt     *time.Time
	PickedUpAt            *time.Time
	ArrivedAtHubAt        *time.Time
	ShipmentAssignedAt    *time.Time
	DepartedAt            *time.Time
	ArrivedAtCollectionAt *time.Time
	DispatchedAt          *time.Time
	DeliveredAt           *time.Time
	ResolvedAt            *time.Time
}

// NewTrackingNo generates a customer-facing tracking number of the form
// PT<yyyymmdd><8 hex chars>, e.g. PT20240117A3F29B01.
func NewTrackingNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PT%s%s", now.UTC().Format("20060102"), suffix)
}

// Parcel is the aggregate root of the parcel lifecycle. It reconciles every
// intake path (branch drop-off, scheduled pickup, doorstep delivery,
// collection-center pickup, bulk B2B consolidation) into one consistent record:
// a status driven by the central transition table, per-stage timestamps, exactly
// one payment, and an optional reference to the B2B shipment carrying it.
//
// Invariants:
//   - status transitions follow the transition table, filtered by the parcel's
//     (submittingType, receivingType) pair
//   - replayed transitions are rejected, never silently accepted
//   - exactly one active Payment, settled automatically on COD delivery
//   - origin and destination branch codes are set at creation and immutable
//   - parcels are never deleted; terminal parcels remain as history
type Parcel struct {
	// id is the unique identifier of the parcel
	id kernel.UUID

	// trackingNo is the customer-facing tracking number
	trackingNo string

	// itemType describes the contents ("documents", "electronics", ...)
	itemType string

	// size classifies the physical footprint, shared with pricing
	size kernel.ItemSize

	// submittingType is how the parcel enters the network
	submittingType SubmittingType

	// receivingType is how the parcel leaves the network
	receivingType ReceivingType

	// shippingMethod is the service level
	shippingMethod ShippingMethod

	// sender and receiver are the two parties of the parcel
	sender   Contact
	receiver Contact

	// fromBranch and toBranch are the origin and destination branch codes
	fromBranch string
	toBranch   string

	// payment is the single active payment record
	payment *Payment

	// status is the current lifecycle state
	status Status

	// shipmentID references the B2B shipment carrying the parcel, nil until consolidated
	shipmentID *kernel.UUID

	// stamps records when each stage was reached
	stamps Timestamps

	// guard ensures the parcel was properly constructed
	guard guard.ConstructorGuard
}

// NewParcel creates a parcel at order placement. The parcel starts in
// OrderPlaced with its placement timestamp set to now and must carry a payment
// record created for the quoted amount.
func NewParcel(
	id kernel.UUID,
	trackingNo string,
	itemType string,
	size kernel.ItemSize,
	submittingType SubmittingType,
	receivingType ReceivingType,
	shippingMethod ShippingMethod,
	sender Contact,
	receiver Contact,
	fromBranch string,
	toBranch string,
	payment *Payment,
	now time.Time,
) (*Parcel, error) {
	parcel := &Parcel{
		status: StatusOrderPlaced,
		stamps: Timestamps{PlacedAt: now},
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setTrackingNo(trackingNo),
		parcel.setSize(size),
		parcel.setIntake(submittingType, receivingType),
		parcel.setShippingMethod(shippingMethod),
		parcel.setBranches(fromBranch, toBranch),
		parcel.setPayment(payment),
	); err != nil {
		return nil, err
	}

	parcel.itemType = itemType
	parcel.sender = sender
	parcel.receiver = receiver
	return parcel, nil
}

// RestoreParcel reconstructs a parcel aggregate from persistent storage,
// preserving its status, timestamps, payment, and shipment reference.
func RestoreParcel(
	id kernel.UUID,
	trackingNo string,
	itemType string,
	size kernel.ItemSize,
	submittingType SubmittingType,
	receivingType ReceivingType,
	shippingMethod ShippingMethod,
	sender Contact,
	receiver Contact,
	fromBranch string,
	toBranch string,
	payment *Payment,
	status Status,
	shipmentID *kernel.UUID,
	stamps Timestamps,
) (*Parcel, error) {
	parcel := &Parcel{
		stamps: stamps,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcel.setID(id),
		parcel.setTrackingNo(trackingNo),
		parcel.setSize(size),
		parcel.setIntake(submittingType, receivingType),
		parcel.setShippingMethod(shippingMethod),
		parcel.setBranches(fromBranch, toBranch),
		parcel.setPayment(payment),
		parcel.setStatus(status),
	); err != nil {
		return nil, err
	}

	if shipmentID != nil {
		if err := shipmentID.Validate(); err != nil {
			return nil, err
		}
		parcel.shipmentID = shipmentID
	}

	parcel.itemType = itemType
	parcel.sender = sender
	parcel.receiver = receiver
	return parcel, nil
}

// Validate ensures the Parcel was created through a factory function.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID { return p.id }

// TrackingNo returns the customer-facing tracking number.
func (p *Parcel) TrackingNo() string { return p.trackingNo }

// ItemType returns the content description.
func (p *Parcel) ItemType() string { return p.itemType }

// Size returns the parcel's footprint classification.
func (p *Parcel) Size() kernel.ItemSize { return p.size }

// SubmittingType returns how the parcel enters the network.
func (p *Parcel) SubmittingType() SubmittingType { return p.submittingType }

// ReceivingType returns how the parcel leaves the network.
func (p *Parcel) ReceivingType() ReceivingType { return p.receivingType }

// ShippingMethod returns the service level.
func (p *Parcel) ShippingMethod() ShippingMethod { return p.shippingMethod }

// Sender returns the sending party.
func (p *Parcel) Sender() Contact { return p.sender }

// Receiver returns the receiving party.
func (p *Parcel) Receiver() Contact { return p.receiver }

// FromBranch returns the origin branch code.
func (p *Parcel) FromBranch() string { return p.fromBranch }

// ToBranch returns the destination branch code.
func (p *Parcel) ToBranch() string { return p.toBranch }

// Payment returns the parcel's single active payment record.
func (p *Parcel) Payment() *Payment { return p.payment }

// Status returns the current lifecycle state.
func (p *Parcel) Status() Status { return p.status }

// Shipment returns the ID of the B2B shipment carrying the parcel.
// Returns nil while the parcel is not consolidated.
func (p *Parcel) Shipment() *kernel.UUID { return p.shipmentID }

// Stamps returns the per-stage timestamps recorded so far.
func (p *Parcel) Stamps() Timestamps { return p.stamps }

// Volume returns the parcel volume in cubic meters, derived from its size.
func (p *Parcel) Volume() float64 { return p.size.Volume() }

// Weight returns the parcel weight in kilograms, derived from its size.
func (p *Parcel) Weight() float64 { return p.size.Weight() }

// Progress reports the parcel's position on the linear happy path as a
// percentage. The second return value is false for exception states, which are
// reported separately from the linear ordering.
func (p *Parcel) Progress() (float64, bool) {
	return p.status.Progress()
}

// ApplyEvent advances the lifecycle in response to a confirmed external event
// (QR scan, scheduler assignment, driver update) and stamps the stage timestamp.
//
// The transition is rejected with an InvalidTransitionError when:
//   - the transition table has no edge from the current status to the target
//   - the event replays a transition that is already satisfied
//   - the edge is not legal for the parcel's (submittingType, receivingType) pair
//
// Side effects: reaching Delivered on a COD parcel settles the linked payment.
// The mutation is all-or-nothing: on error the parcel is left unchanged.
func (p *Parcel) ApplyEvent(event Event, at time.Time) error {
	if err := event.Validate(); err != nil {
		return err
	}

	target := event.TargetStatus()
	if !p.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError("parcel", p.status.String(), target.String())
	}

	if err := p.checkIntakeRules(target); err != nil {
		return err
	}

	if target == StatusDelivered && p.payment.Method() == PaymentCOD && p.payment.Status() == PaymentPending {
		if err := p.payment.MarkPaid(at); err != nil {
			return err
		}
	}

	p.status = target
	p.stamp(target, at)
	return nil
}

// AssignToShipment consolidates the parcel into a B2B shipment: it applies the
// shipment-assignment transition and records the shipment reference.
func (p *Parcel) AssignToShipment(shipmentID kernel.UUID, at time.Time) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	if err := p.ApplyEvent(EventShipmentAssigned, at); err != nil {
		return err
	}

	p.shipmentID = &shipmentID
	return nil
}

// ConfirmPayment settles a physical payment after staff confirmation.
// Online payments are settled at creation and COD payments settle on delivery,
// so confirming those is rejected.
func (p *Parcel) ConfirmPayment(at time.Time) error {
	if p.payment.Method() != PaymentPhysical {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod",
			fmt.Errorf("%s payments cannot be confirmed manually", p.payment.Method()),
		)
	}
	return p.payment.MarkPaid(at)
}

// checkIntakeRules filters transition-table edges by the intake pair chosen at
// creation. Pickup parcels walk PendingPickup/PickedUp while drop-off and branch
// submissions skip straight to the hub; doorstep parcels must pass
// DeliveryDispatched while collection-center parcels are handed over directly.
func (p *Parcel) checkIntakeRules(target Status) error {
	reject := func() error {
		return errs.NewInvalidTransitionError("parcel", p.status.String(), target.String())
	}

	switch target {
	case StatusPendingPickup:
		if p.submittingType != SubmittingPickup {
			return reject()
		}
	case StatusArrivedAtDistributionCenter:
		if p.status == StatusOrderPlaced && p.submittingType == SubmittingPickup {
			return reject()
		}
	case StatusDeliveryDispatched:
		if p.receivingType != ReceivingDoorstep {
			return reject()
		}
	case StatusDelivered:
		if p.status == StatusArrivedAtCollectionCenter && p.receivingType != ReceivingCollectionCenter {
			return reject()
		}
	}
	return nil
}

func (p *Parcel) stamp(status Status, at time.Time) {
	switch status {
	case StatusPendingPickup:
		p.stamps.PickupScheduledAt = &at
	case StatusPickedUp:
		p.stamps.PickedUpAt = &at
	case StatusArrivedAtDistributionCenter:
		p.stamps.ArrivedAtHubAt = &at
	case StatusShipmentAssigned:
		p.stamps.ShipmentAssignedAt = &at
	case StatusInTransit:
		p.stamps.DepartedAt = &at
	case StatusArrivedAtCollectionCenter:
		p.stamps.ArrivedAtCollectionAt = &at
	case StatusDeliveryDispatched:
		p.stamps.DispatchedAt = &at
	case StatusDelivered:
		p.stamps.DeliveredAt = &at
	case StatusNotAccepted, StatusWrongAddress, StatusReturned:
		p.stamps.ResolvedAt = &at
	}
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNo(trackingNo string) error {
	if trackingNo == "" {
		return ErrTrackingNoIsRequired
	}
	p.trackingNo = trackingNo
	return nil
}

func (p *Parcel) setSize(size kernel.ItemSize) error {
	if err := size.Validate(); err != nil {
		return err
	}
	p.size = size
	return nil
}

func (p *Parcel) setIntake(submittingType SubmittingType, receivingType ReceivingType) error {
	if err := submittingType.Validate(); err != nil {
		return err
	}
	if err := receivingType.Validate(); err != nil {
		return err
	}
	p.submittingType = submittingType
	p.receivingType = receivingType
	return nil
}

func (p *Parcel) setShippingMethod(method ShippingMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.shippingMethod = method
	return nil
}

func (p *Parcel) setBranches(fromBranch, toBranch string) error {
	if fromBranch == "" || toBranch == "" {
		return ErrBranchCodeIsRequired
	}
	p.fromBranch = fromBranch
	p.toBranch = toBranch
	return nil
}

func (p *Parcel) setPayment(payment *Payment) error {
	if payment == nil {
		return ErrPaymentIsRequired
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	p.payment = payment
	return nil
}

func (p *Parcel) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
