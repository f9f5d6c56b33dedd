// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcelhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// ScheduleRepoFactory provides access to the schedule repository within a transaction.
	ScheduleRepoFactory interface {
		ScheduleRepository() ports.ScheduleRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ParcelUoW manages transactions for parcel-only operations.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// ScheduleUoW manages transactions for capacity scheduling: one assignment
	// spans the parcel, vehicle, and schedule aggregates.
	ScheduleUoW interface {
		TxManager
		ParcelRepoFactory
		VehicleRepoFactory
		ScheduleRepoFactory
	}

	// ScheduleUoWFactory creates new scheduling unit of work instances.
	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}

	// ShipmentUoW manages transactions for consolidation and shipment
	// transitions, which cascade across parcels and the assigned vehicle.
	ShipmentUoW interface {
		TxManager
		ParcelRepoFactory
		VehicleRepoFactory
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}
)
