// Package vehicle provides domain entities and business logic for transport
// assets and their pickup and delivery schedules.
//
// The package includes:
//   - Vehicle: A transport asset with hard volume and weight capabilities and an
//     availability flag claimed exclusively by one active shipment at a time
//   - Schedule: A pickup or delivery bucket keyed by vehicle, date, half-day
//     slot, and type, accumulating parcels and running load totals
//
// Key business rules:
//   - An assignment that would push a schedule past either vehicle capability is
//     rejected; partial assignment never happens
//   - Unassigning a parcel returns its volume and weight to the pool
//   - Restored aggregates keep their persisted state as a compare-and-set
//     baseline so concurrent updates cannot oversell capacity
package vehicle
