package services

import (
	"github.com/shopspring/decimal"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
)

// Quote is the priced answer for one route and parcel size.
type Quote struct {
	DistanceKm float64
	Amount     int64
}

// Tariff is a domain service computing parcel prices over the branch route
// graph. Pricing is a pure function of size, distance, and shipping method:
// the per-km rate comes from the shared size lookup also used for capacity
// accounting, and express multiplies the standard total by 1.5.
//
// Money math runs on decimals so repeated rounding cannot drift.
type Tariff struct {
	graph *RouteGraph
}

// NewTariff creates a tariff service over the given route graph.
func NewTariff(graph *RouteGraph) *Tariff {
	return &Tariff{graph: graph}
}

// Price computes the amount for a size over a distance. The standard total is
// rate-per-km times distance, rounded to the nearest whole unit; express is the
// rounded standard total times 1.5, rounded again.
func (t *Tariff) Price(size kernel.ItemSize, distanceKm float64, method parcel.ShippingMethod) (int64, error) {
	if err := method.Validate(); err != nil {
		return 0, err
	}

	amount := decimal.NewFromFloat(distanceKm).
		Mul(decimal.NewFromInt(size.RatePerKm())).
		Round(0)

	if method == parcel.ShippingExpress {
		amount = amount.Mul(decimal.NewFromFloat(1.5)).Round(0)
	}

	return amount.IntPart(), nil
}

// QuoteRoute resolves the route distance and prices the parcel in one call.
func (t *Tariff) QuoteRoute(size kernel.ItemSize, fromCode, toCode string, method parcel.ShippingMethod) (Quote, error) {
	distanceKm, err := t.graph.Distance(fromCode, toCode)
	if err != nil {
		return Quote{}, err
	}

	amount, err := t.Price(size, distanceKm, method)
	if err != nil {
		return Quote{}, err
	}

	return Quote{DistanceKm: distanceKm, Amount: amount}, nil
}
