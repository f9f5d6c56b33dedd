package kernel

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// ItemSize classifies a parcel's physical footprint. It is the single lookup both
// the pricing engine and the capacity scheduler derive from, so the two can never
// disagree about how much room a parcel takes or what it costs to move.
//
// Each size maps to a fixed (volume m³, weight kg, rate per km) triple:
//
//	small:  0.2 m³ /  2 kg / 10 per km
//	medium: 0.5 m³ /  5 kg / 15 per km
//	large:  1.0 m³ / 10 kg / 20 per km
type ItemSize int

const (
	// SizeUnknown represents an invalid or undefined item size.
	SizeUnknown ItemSize = iota

	// SizeSmall fits documents and small packets.
	SizeSmall

	// SizeMedium fits standard boxes.
	SizeMedium

	// SizeLarge fits bulky freight items.
	SizeLarge
)

// defaultRatePerKm is applied when a size cannot be resolved; pricing is tolerant
// of unknown sizes while parcel creation is not.
const defaultRatePerKm = 15

type itemSizeSpec struct {
	name      string
	volume    float64
	weight    float64
	ratePerKm int64
}

func getItemSizeSpecs() map[ItemSize]itemSizeSpec {
	return map[ItemSize]itemSizeSpec{
		SizeSmall:  {name: "small", volume: 0.2, weight: 2, ratePerKm: 10},
		SizeMedium: {name: "medium", volume: 0.5, weight: 5, ratePerKm: 15},
		SizeLarge:  {name: "large", volume: 1, weight: 10, ratePerKm: 20},
	}
}

// ItemSizeFromString parses a size label ("small", "medium", "large").
// Returns an error for any other value.
func ItemSizeFromString(s string) (ItemSize, error) {
	for size, spec := range getItemSizeSpecs() {
		if spec.name == s {
			return size, nil
		}
	}
	return SizeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"itemSize", fmt.Errorf("%q is not a valid item size", s),
	)
}

// Validate checks that the size is one of the defined values.
func (s ItemSize) Validate() error {
	if _, ok := getItemSizeSpecs()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"itemSize", fmt.Errorf("%d is not a valid item size", s),
		)
	}
	return nil
}

// String returns the size label, or "unknown" for invalid values.
func (s ItemSize) String() string {
	if spec, ok := getItemSizeSpecs()[s]; ok {
		return spec.name
	}
	return "unknown"
}

// Volume returns the parcel volume in cubic meters attributed to this size.
// Unknown sizes occupy no capacity; they are rejected before scheduling.
func (s ItemSize) Volume() float64 {
	if spec, ok := getItemSizeSpecs()[s]; ok {
		return spec.volume
	}
	return 0
}

// Weight returns the parcel weight in kilograms attributed to this size.
func (s ItemSize) Weight() float64 {
	if spec, ok := getItemSizeSpecs()[s]; ok {
		return spec.weight
	}
	return 0
}

// RatePerKm returns the base shipping rate per kilometer for this size.
// Unknown sizes fall back to the medium rate so quoting stays total.
func (s ItemSize) RatePerKm() int64 {
	if spec, ok := getItemSizeSpecs()[s]; ok {
		return spec.ratePerKm
	}
	return defaultRatePerKm
}
