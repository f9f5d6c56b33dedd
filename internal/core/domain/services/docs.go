// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the parcel network. It implements workflows
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - RouteGraph: A directed branch-to-branch distance lookup loaded from
//     configuration data
//   - Tariff: Distance-based pricing over the route graph with the express
//     surcharge
//   - ShipmentConsolidator: Grouping of same-route parcels into one B2B shipment
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
