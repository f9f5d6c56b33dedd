package parcel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// SubmittingType describes how a parcel enters the network: collected from the
// sender's address, dropped off by the sender, or handed over at a branch counter.
// The submitting type decides the front half of the lifecycle: pickup parcels walk
// PendingPickup/PickedUp, drop-off and branch parcels arrive at the distribution
// center directly.
type SubmittingType int

const (
	SubmittingUnknown SubmittingType = iota
	SubmittingPickup
	SubmittingDropOff
	SubmittingBranch
)

func getSubmittingTypeStrings() map[SubmittingType]string {
	return map[SubmittingType]string{
		SubmittingPickup:  "pickup",
		SubmittingDropOff: "drop-off",
		SubmittingBranch:  "branch",
	}
}

// SubmittingTypeFromString parses a submitting type label.
func SubmittingTypeFromString(s string) (SubmittingType, error) {
	for t, str := range getSubmittingTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return SubmittingUnknown, errs.NewValueIsInvalidErrorWithCause(
		"submittingType", fmt.Errorf("%q is not a valid submitting type", s),
	)
}

// Validate checks the submitting type is one of the defined values.
func (t SubmittingType) Validate() error {
	if _, ok := getSubmittingTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"submittingType", fmt.Errorf("%d is not a valid submitting type", t),
		)
	}
	return nil
}

// String returns the submitting type label.
func (t SubmittingType) String() string {
	if s, ok := getSubmittingTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// ReceivingType describes how a parcel leaves the network: delivered to the
// receiver's doorstep or collected by the receiver at a collection center.
// Doorstep parcels pass through DeliveryDispatched; collection-center parcels wait
// at ArrivedAtCollectionCenter until the receiver collects.
type ReceivingType int

const (
	ReceivingUnknown ReceivingType = iota
	ReceivingDoorstep
	ReceivingCollectionCenter
)

func getReceivingTypeStrings() map[ReceivingType]string {
	return map[ReceivingType]string{
		ReceivingDoorstep:         "doorstep",
		ReceivingCollectionCenter: "collection_center",
	}
}

// ReceivingTypeFromString parses a receiving type label.
func ReceivingTypeFromString(s string) (ReceivingType, error) {
	for t, str := range getReceivingTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return ReceivingUnknown, errs.NewValueIsInvalidErrorWithCause(
		"receivingType", fmt.Errorf("%q is not a valid receiving type", s),
	)
}

// Validate checks the receiving type is one of the defined values.
func (t ReceivingType) Validate() error {
	if _, ok := getReceivingTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"receivingType", fmt.Errorf("%d is not a valid receiving type", t),
		)
	}
	return nil
}

// String returns the receiving type label.
func (t ReceivingType) String() string {
	if s, ok := getReceivingTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// ShippingMethod selects the service level. Express multiplies the base price by
// 1.5; it carries no scheduling priority.
type ShippingMethod int

const (
	ShippingUnknown ShippingMethod = iota
	ShippingStandard
	ShippingExpress
)

func getShippingMethodStrings() map[ShippingMethod]string {
	return map[ShippingMethod]string{
		ShippingStandard: "standard",
		ShippingExpress:  "express",
	}
}

// ShippingMethodFromString parses a shipping method label.
func ShippingMethodFromString(s string) (ShippingMethod, error) {
	for m, str := range getShippingMethodStrings() {
		if str == s {
			return m, nil
		}
	}
	return ShippingUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shippingMethod", fmt.Errorf("%q is not a valid shipping method", s),
	)
}

// Validate checks the shipping method is one of the defined values.
func (m ShippingMethod) Validate() error {
	if _, ok := getShippingMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"shippingMethod", fmt.Errorf("%d is not a valid shipping method", m),
		)
	}
	return nil
}

// String returns the shipping method label.
func (m ShippingMethod) String() string {
	if s, ok := getShippingMethodStrings()[m]; ok {
		return s
	}
	return "unknown"
}
