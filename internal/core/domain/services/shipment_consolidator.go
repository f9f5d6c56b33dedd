package services

import (
	"errors"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"
)

// ErrNoParcelsToConsolidate is returned when consolidation is attempted with an
// empty parcel list.
var ErrNoParcelsToConsolidate = errors.New("no parcels to consolidate")

// ShipmentConsolidator is a domain service grouping parcels traveling the same
// inter-branch route into one B2B shipment.
//
// Business rules:
//   - every parcel must sit at the source distribution center, ready for
//     shipment assignment
//   - every parcel's destination must match the shipment route
//   - consolidation is atomic: one rejected parcel rejects the whole batch
type ShipmentConsolidator struct {
	graph *RouteGraph
}

// NewShipmentConsolidator creates a consolidator over the given route graph.
func NewShipmentConsolidator(graph *RouteGraph) *ShipmentConsolidator {
	return &ShipmentConsolidator{graph: graph}
}

// Consolidate builds a Pending shipment for the route and assigns every parcel
// to it, stamping the route distance from the branch graph onto the shipment.
func (c *ShipmentConsolidator) Consolidate(
	shipmentID kernel.UUID,
	parcels []*parcel.Parcel,
	sourceBranch, destinationBranch string,
	at time.Time,
) (*shipment.Shipment, error) {
	if len(parcels) == 0 {
		return nil, ErrNoParcelsToConsolidate
	}

	distance, err := c.graph.Distance(sourceBranch, destinationBranch)
	if err != nil {
		return nil, err
	}

	newShipment, err := shipment.NewShipment(shipmentID, sourceBranch, destinationBranch, distance)
	if err != nil {
		return nil, err
	}

	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if p.FromBranch() != sourceBranch {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"parcelId",
				fmt.Errorf("parcel %s sits at hub %s, not %s", p.TrackingNo(), p.FromBranch(), sourceBranch),
			)
		}
		if p.ToBranch() != destinationBranch {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"parcelId",
				fmt.Errorf("parcel %s is bound for %s, not %s", p.TrackingNo(), p.ToBranch(), destinationBranch),
			)
		}

		if err := p.AssignToShipment(shipmentID, at); err != nil {
			return nil, err
		}
		if err := newShipment.AddParcel(shipment.ParcelLoad{
			ParcelID: p.ID(),
			Volume:   p.Volume(),
			Weight:   p.Weight(),
		}); err != nil {
			return nil, err
		}
	}

	return newShipment, nil
}
