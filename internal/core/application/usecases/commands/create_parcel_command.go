package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// ContactDetails carries one party of the parcel through the command layer.
type ContactDetails struct {
	Name    string
	Phone   string
	Address string
}

// CreateParcelCommand represents a request to place a parcel order. It carries
// the intake pair, the parties, the route, and the payment arrangement; pricing
// is resolved by the handler from the route graph so callers cannot quote
// themselves a discount.
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID       kernel.UUID
	itemType       string
	size           kernel.ItemSize
	submittingType parcel.SubmittingType
	receivingType  parcel.ReceivingType
	shippingMethod parcel.ShippingMethod
	sender         ContactDetails
	receiver       ContactDetails
	fromBranch     string
	toBranch       string
	paymentMethod  parcel.PaymentMethod
	paidBy         parcel.Payer

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to place a parcel order.
// All enum parameters and both branch codes are validated up front.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	itemType string,
	size kernel.ItemSize,
	submittingType parcel.SubmittingType,
	receivingType parcel.ReceivingType,
	shippingMethod parcel.ShippingMethod,
	sender ContactDetails,
	receiver ContactDetails,
	fromBranch string,
	toBranch string,
	paymentMethod parcel.PaymentMethod,
	paidBy parcel.Payer,
) (CreateParcelCommand, error) {
	command := CreateParcelCommand{
		itemType: itemType,
		sender:   sender,
		receiver: receiver,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParcelID(parcelID),
		command.setSize(size),
		command.setIntake(submittingType, receivingType),
		command.setShippingMethod(shippingMethod),
		command.setBranches(fromBranch, toBranch),
		command.setPayment(paymentMethod, paidBy),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the unique identifier for the parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID { return c.parcelID }

// ItemType returns the content description.
func (c CreateParcelCommand) ItemType() string { return c.itemType }

// Size returns the parcel footprint classification.
func (c CreateParcelCommand) Size() kernel.ItemSize { return c.size }

// SubmittingType returns how the parcel enters the network.
func (c CreateParcelCommand) SubmittingType() parcel.SubmittingType { return c.submittingType }

// ReceivingType returns how the parcel leaves the network.
func (c CreateParcelCommand) ReceivingType() parcel.ReceivingType { return c.receivingType }

// ShippingMethod returns the requested service level.
func (c CreateParcelCommand) ShippingMethod() parcel.ShippingMethod { return c.shippingMethod }

// Sender returns the sending party's details.
func (c CreateParcelCommand) Sender() ContactDetails { return c.sender }

// Receiver returns the receiving party's details.
func (c CreateParcelCommand) Receiver() ContactDetails { return c.receiver }

// FromBranch returns the origin branch code.
func (c CreateParcelCommand) FromBranch() string { return c.fromBranch }

// ToBranch returns the destination branch code.
func (c CreateParcelCommand) ToBranch() string { return c.toBranch }

// PaymentMethod returns how the parcel will be paid for.
func (c CreateParcelCommand) PaymentMethod() parcel.PaymentMethod { return c.paymentMethod }

// PaidBy returns which party owes the amount.
func (c CreateParcelCommand) PaidBy() parcel.Payer { return c.paidBy }

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setSize(size kernel.ItemSize) error {
	if err := size.Validate(); err != nil {
		return err
	}
	c.size = size
	return nil
}

func (c *CreateParcelCommand) setIntake(submittingType parcel.SubmittingType, receivingType parcel.ReceivingType) error {
	if err := submittingType.Validate(); err != nil {
		return err
	}
	if err := receivingType.Validate(); err != nil {
		return err
	}
	c.submittingType = submittingType
	c.receivingType = receivingType
	return nil
}

func (c *CreateParcelCommand) setShippingMethod(shippingMethod parcel.ShippingMethod) error {
	if err := shippingMethod.Validate(); err != nil {
		return err
	}
	c.shippingMethod = shippingMethod
	return nil
}

func (c *CreateParcelCommand) setBranches(fromBranch, toBranch string) error {
	if fromBranch == "" || toBranch == "" {
		return errs.NewValueIsRequiredError("branch code")
	}
	c.fromBranch = fromBranch
	c.toBranch = toBranch
	return nil
}

func (c *CreateParcelCommand) setPayment(paymentMethod parcel.PaymentMethod, paidBy parcel.Payer) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	if err := paidBy.Validate(); err != nil {
		return err
	}
	c.paymentMethod = paymentMethod
	c.paidBy = paidBy
	return nil
}
