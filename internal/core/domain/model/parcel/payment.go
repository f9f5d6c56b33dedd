package parcel

import (
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment instance was not created
	// through the NewPayment or RestorePayment factory functions.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

	// ErrCODMustBePaidByReceiver is returned when a cash-on-delivery payment names
	// the sender as the payer.
	ErrCODMustBePaidByReceiver = errs.NewValueIsInvalidError("COD payments must be paid by the receiver")

	// ErrAmountIsInvalid is returned when a payment amount is not positive.
	ErrAmountIsInvalid = errs.NewValueIsInvalidError("amount must be greater than 0")
)

// PaymentMethod identifies how a parcel is paid for.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentOnline is settled through the payment gateway at order placement.
	PaymentOnline

	// PaymentPhysical is settled in cash at a branch counter and confirmed by staff.
	PaymentPhysical

	// PaymentCOD is cash on delivery: always owed by the receiver, settled when the
	// parcel is delivered.
	PaymentCOD
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentOnline:   "online",
		PaymentPhysical: "physicalPayment",
		PaymentCOD:      "COD",
	}
}

// PaymentMethodFromString parses a payment method label.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for m, str := range getPaymentMethodStrings() {
		if str == s {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod", fmt.Errorf("%q is not a valid payment method", s),
	)
}

// Validate checks the payment method is one of the defined values.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod", fmt.Errorf("%d is not a valid payment method", m),
		)
	}
	return nil
}

// String returns the payment method label.
func (m PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[m]; ok {
		return s
	}
	return "unknown"
}

// Payer identifies which party owes the shipping fee.
type Payer int

const (
	PayerUnknown Payer = iota
	PayerSender
	PayerReceiver
)

func getPayerStrings() map[Payer]string {
	return map[Payer]string{
		PayerSender:   "sender",
		PayerReceiver: "receiver",
	}
}

// PayerFromString parses a payer label.
func PayerFromString(s string) (Payer, error) {
	for p, str := range getPayerStrings() {
		if str == s {
			return p, nil
		}
	}
	return PayerUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paidBy", fmt.Errorf("%q is not a valid payer", s),
	)
}

// Validate checks the payer is one of the defined values.
func (p Payer) Validate() error {
	if _, ok := getPayerStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paidBy", fmt.Errorf("%d is not a valid payer", p),
		)
	}
	return nil
}

// String returns the payer label.
func (p Payer) String() string {
	if s, ok := getPayerStrings()[p]; ok {
		return s
	}
	return "unknown"
}

// PaymentStatus tracks whether the fee has been settled.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
)

// PaymentStatusFromString parses a payment status name as stored in the database.
func PaymentStatusFromString(value string) (PaymentStatus, error) {
	switch value {
	case "pending":
		return PaymentPending, nil
	case "paid":
		return PaymentPaid, nil
	default:
		return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus", fmt.Errorf("%q is not a valid payment status", value),
		)
	}
}

// String returns "pending" or "paid".
func (s PaymentStatus) String() string {
	switch s {
	case PaymentPending:
		return "pending"
	case PaymentPaid:
		return "paid"
	default:
		return "unknown"
	}
}

// Payment is the ledger record for a parcel's shipping fee. Every parcel owns
// exactly one active payment; its lifecycle is cross-linked to the parcel's:
// a COD payment settles automatically when the parcel reaches Delivered.
//
// Invariants:
//   - COD implies paidBy=receiver and an initial pending status
//   - online payments are settled immediately at creation
//   - physical payments start pending and settle on staff confirmation
//   - a settled payment cannot be settled again
type Payment struct {
	// id is the unique identifier of the payment record
	id kernel.UUID

	// method is how the fee is collected
	method PaymentMethod

	// paidBy is the party owing the fee
	paidBy Payer

	// amount is the fee in whole currency units
	amount int64

	// status is pending until the fee is settled
	status PaymentStatus

	// paidAt is the settlement time, nil while pending
	paidAt *time.Time

	// guard ensures the payment was properly constructed
	guard guard.ConstructorGuard
}

// NewPayment creates a payment record for a freshly placed parcel order.
// Online payments are settled at once and stamped with now; physical and COD
// payments start pending. COD enforces paidBy=receiver.
func NewPayment(id kernel.UUID, method PaymentMethod, paidBy Payer, amount int64, now time.Time) (*Payment, error) {
	payment := &Payment{
		status: PaymentPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		payment.setID(id),
		payment.setMethod(method),
		payment.setPaidBy(paidBy),
		payment.setAmount(amount),
	); err != nil {
		return nil, err
	}

	if method == PaymentCOD && paidBy != PayerReceiver {
		return nil, ErrCODMustBePaidByReceiver
	}

	if method == PaymentOnline {
		paidAt := now
		payment.status = PaymentPaid
		payment.paidAt = &paidAt
	}

	return payment, nil
}

// RestorePayment reconstructs a payment record from persistent storage.
func RestorePayment(
	id kernel.UUID,
	method PaymentMethod,
	paidBy Payer,
	amount int64,
	status PaymentStatus,
	paidAt *time.Time,
) (*Payment, error) {
	payment := &Payment{
		status: status,
		paidAt: paidAt,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		payment.setID(id),
		payment.setMethod(method),
		payment.setPaidBy(paidBy),
		payment.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return payment, nil
}

// Validate ensures the Payment was created through a factory function.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// Method returns how the fee is collected.
func (p *Payment) Method() PaymentMethod {
	return p.method
}

// PaidBy returns the party owing the fee.
func (p *Payment) PaidBy() Payer {
	return p.paidBy
}

// Amount returns the fee in whole currency units.
func (p *Payment) Amount() int64 {
	return p.amount
}

// Status returns whether the fee has been settled.
func (p *Payment) Status() PaymentStatus {
	return p.status
}

// PaidAt returns the settlement time, or nil while pending.
func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

// MarkPaid settles the payment at the given time. Settling an already settled
// payment is rejected with an InvalidTransitionError, never silently accepted.
func (p *Payment) MarkPaid(at time.Time) error {
	if p.status == PaymentPaid {
		return errs.NewInvalidTransitionError("payment", PaymentPaid.String(), PaymentPaid.String())
	}

	p.status = PaymentPaid
	p.paidAt = &at
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setPaidBy(paidBy Payer) error {
	if err := paidBy.Validate(); err != nil {
		return err
	}
	p.paidBy = paidBy
	return nil
}

func (p *Payment) setAmount(amount int64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}
	p.amount = amount
	return nil
}
