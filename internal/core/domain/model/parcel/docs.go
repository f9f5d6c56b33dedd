// Package parcel provides domain entities and business logic for the parcel
// lifecycle. It implements the Parcel aggregate root with its status state
// machine, intake and receiving paths, and the attached payment record.
//
// The package includes:
//   - Parcel: The aggregate root that reconciles every intake and receiving path
//     into one consistent lifecycle
//   - Status and Event: A state machine driven by a central transition table,
//     advanced only by confirmed external events
//   - Payment: The single payment record of a parcel, settled at placement,
//     at a branch counter, or on delivery depending on the method
//
// Key business rules:
//   - Status transitions follow the transition table, filtered by the parcel's
//     submitting and receiving types
//   - Replayed or skipped transitions are rejected, never silently accepted
//   - COD parcels settle their payment automatically when delivered
//   - A parcel in an exception state keeps its full history; parcels are never
//     deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
