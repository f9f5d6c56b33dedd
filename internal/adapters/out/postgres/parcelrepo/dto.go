// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Enum values are stored by their string labels so rows stay readable; the
// payment record lives in its own table linked by foreign key.
type ParcelDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNo     string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	ItemType       string     `gorm:"type:varchar(255)"`
	Size           string     `gorm:"type:varchar(16);not null"`
	SubmittingType string     `gorm:"type:varchar(32);not null"`
	ReceivingType  string     `gorm:"type:varchar(32);not null"`
	ShippingMethod string     `gorm:"type:varchar(16);not null"`
	Sender         ContactDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver       ContactDTO `gorm:"embedded;embeddedPrefix:receiver_"`
	FromBranch     string     `gorm:"type:varchar(16);not null;index"`
	ToBranch       string     `gorm:"type:varchar(16);not null;index"`
	Payment        PaymentDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
	Status         string     `gorm:"type:varchar(64);not null;index"`
	ShipmentID     *uuid.UUID `gorm:"type:uuid;index"`

	PlacedAt              time.Time `gorm:"not null"`
	PickupScheduledAt     *time.Time
	PickedUpAt            *time.Time
	ArrivedAtHubAt        *time.Time
	ShipmentAssignedAt    *time.Time
	DepartedAt            *time.Time
	ArrivedAtCollectionAt *time.Time
	DispatchedAt          *time.Time
	DeliveredAt           *time.Time
	ResolvedAt            *time.Time

	UpdatedAt time.Time
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// ContactDTO represents the embedded sender or receiver details within the parcel table.
type ContactDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(32);not null"`
	Address string `gorm:"type:varchar(512)"`
}

// PaymentDTO represents the database structure for persisting payment records.
// Every parcel owns exactly one payment row.
type PaymentDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Method   string    `gorm:"type:varchar(16);not null"`
	PaidBy   string    `gorm:"type:varchar(16);not null"`
	Amount   int64     `gorm:"not null"`
	Status   string    `gorm:"type:varchar(16);not null"`
	PaidAt   *time.Time
}

// TableName specifies the database table name for payment records.
// Overrides GORM's default naming convention to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a parcel domain aggregate to its database representation.
// Maps all parcel attributes including the payment record and lifecycle timestamps.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	parcelID := aggregate.ID().Bytes()

	var shipmentID *uuid.UUID
	if id := aggregate.Shipment(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}

	payment := aggregate.Payment()
	stamps := aggregate.Stamps()

	return ParcelDTO{
		ID:             parcelID,
		TrackingNo:     aggregate.TrackingNo(),
		ItemType:       aggregate.ItemType(),
		Size:           aggregate.Size().String(),
		SubmittingType: aggregate.SubmittingType().String(),
		ReceivingType:  aggregate.ReceivingType().String(),
		ShippingMethod: aggregate.ShippingMethod().String(),
		Sender: ContactDTO{
			Name:    aggregate.Sender().Name(),
			Phone:   aggregate.Sender().Phone(),
			Address: aggregate.Sender().Address(),
		},
		Receiver: ContactDTO{
			Name:    aggregate.Receiver().Name(),
			Phone:   aggregate.Receiver().Phone(),
			Address: aggregate.Receiver().Address(),
		},
		FromBranch: aggregate.FromBranch(),
		ToBranch:   aggregate.ToBranch(),
		Payment: PaymentDTO{
			ID:       payment.ID().Bytes(),
			ParcelID: parcelID,
			Method:   payment.Method().String(),
			PaidBy:   payment.PaidBy().String(),
			Amount:   payment.Amount(),
			Status:   payment.Status().String(),
			PaidAt:   payment.PaidAt(),
		},
		Status:     aggregate.Status().String(),
		ShipmentID: shipmentID,

		PlacedAt:              stamps.PlacedAt,
		PickupScheduledAt:     stamps.PickupScheduledAt,
		PickedUpAt:            stamps.PickedUpAt,
		ArrivedAtHubAt:        stamps.ArrivedAtHubAt,
		ShipmentAssignedAt:    stamps.ShipmentAssignedAt,
		DepartedAt:            stamps.DepartedAt,
		ArrivedAtCollectionAt: stamps.ArrivedAtCollectionAt,
		DispatchedAt:          stamps.DispatchedAt,
		DeliveredAt:           stamps.DeliveredAt,
		ResolvedAt:            stamps.ResolvedAt,
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including its payment using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	size, err := kernel.ItemSizeFromString(dto.Size)
	if err != nil {
		return nil, err
	}

	submittingType, err := parcel.SubmittingTypeFromString(dto.SubmittingType)
	if err != nil {
		return nil, err
	}

	receivingType, err := parcel.ReceivingTypeFromString(dto.ReceivingType)
	if err != nil {
		return nil, err
	}

	shippingMethod, err := parcel.ShippingMethodFromString(dto.ShippingMethod)
	if err != nil {
		return nil, err
	}

	sender, err := parcel.NewContact(dto.Sender.Name, dto.Sender.Phone, dto.Sender.Address)
	if err != nil {
		return nil, err
	}

	receiver, err := parcel.NewContact(dto.Receiver.Name, dto.Receiver.Phone, dto.Receiver.Address)
	if err != nil {
		return nil, err
	}

	payment, err := paymentToDomain(dto.Payment)
	if err != nil {
		return nil, err
	}

	status, err := parcel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var shipmentID *kernel.UUID
	if dto.ShipmentID != nil {
		sID, shipmentErr := kernel.UUIDFromBytes((*dto.ShipmentID)[:])
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		shipmentID = &sID
	}

	stamps := parcel.Timestamps{
		PlacedAt:              dto.PlacedAt,
		PickupScheduledAt:     dto.PickupScheduledAt,
		PickedUpAt:            dto.PickedUpAt,
		ArrivedAtHubAt:        dto.ArrivedAtHubAt,
		ShipmentAssignedAt:    dto.ShipmentAssignedAt,
		DepartedAt:            dto.DepartedAt,
		ArrivedAtCollectionAt: dto.ArrivedAtCollectionAt,
		DispatchedAt:          dto.DispatchedAt,
		DeliveredAt:           dto.DeliveredAt,
		ResolvedAt:            dto.ResolvedAt,
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingNo,
		dto.ItemType,
		size,
		submittingType,
		receivingType,
		shippingMethod,
		sender,
		receiver,
		dto.FromBranch,
		dto.ToBranch,
		payment,
		status,
		shipmentID,
		stamps,
	)
}

// paymentToDomain converts a payment DTO to its domain entity.
// Uses RestorePayment to reconstruct the record with its persisted state.
func paymentToDomain(dto PaymentDTO) (*parcel.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	method, err := parcel.PaymentMethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}

	paidBy, err := parcel.PayerFromString(dto.PaidBy)
	if err != nil {
		return nil, err
	}

	status, err := parcel.PaymentStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestorePayment(id, method, paidBy, dto.Amount, status, dto.PaidAt)
}
