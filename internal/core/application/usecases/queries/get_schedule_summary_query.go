package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrGetScheduleSummaryQueryIsNotConstructed = errors.New(
	"GetScheduleSummaryQuery must be created via NewGetScheduleSummaryQuery constructor",
)

// GetScheduleSummaryQuery retrieves a vehicle's schedule buckets over a date
// range, with load totals and utilization against the vehicle's capacity.
//
// Example:
//
//	query, err := NewGetScheduleSummaryQuery(vehicleID, from, to)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetScheduleSummaryQueryHandler(db)
//
//	buckets, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get schedule summary: %w", err)
//	}
//
//	for _, b := range buckets {
//	    fmt.Printf("%s %s %s: %d parcels, %.0f%% volume, %.0f%% weight\n",
//	        b.Date.Format("2006-01-02"), b.Slot, b.Type,
//	        b.ParcelCount, b.VolumePct, b.WeightPct)
//	}
type GetScheduleSummaryQuery struct {
	vehicleID kernel.UUID
	from      time.Time
	to        time.Time

	guard guard.ConstructorGuard
}

// NewGetScheduleSummaryQuery creates a summary query for one vehicle over the
// inclusive date range [from, to].
func NewGetScheduleSummaryQuery(vehicleID kernel.UUID, from, to time.Time) (GetScheduleSummaryQuery, error) {
	if err := vehicleID.Validate(); err != nil {
		return GetScheduleSummaryQuery{}, errs.NewValueIsRequiredError("vehicleId")
	}
	if from.IsZero() || to.IsZero() {
		return GetScheduleSummaryQuery{}, errs.NewValueIsRequiredError("date range")
	}
	if to.Before(from) {
		return GetScheduleSummaryQuery{}, errs.NewValueIsInvalidError("date range")
	}

	return GetScheduleSummaryQuery{
		vehicleID: vehicleID,
		from:      from.UTC().Truncate(24 * time.Hour),
		to:        to.UTC().Truncate(24 * time.Hour),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// VehicleID returns the vehicle whose schedules are summarized.
func (q GetScheduleSummaryQuery) VehicleID() kernel.UUID { return q.vehicleID }

// From returns the start of the date range.
func (q GetScheduleSummaryQuery) From() time.Time { return q.from }

// To returns the end of the date range.
func (q GetScheduleSummaryQuery) To() time.Time { return q.to }

// Validate ensures the query was created through the constructor.
// Returns ErrGetScheduleSummaryQueryIsNotConstructed if validation fails.
func (q GetScheduleSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetScheduleSummaryQueryIsNotConstructed)
}

// GetScheduleSummaryQueryResponse is one schedule bucket with its load and
// utilization percentages.
type GetScheduleSummaryQueryResponse struct {
	ScheduleID  kernel.UUID `json:"scheduleId"`
	Date        time.Time   `json:"date"`
	Slot        string      `json:"slot"`
	Type        string      `json:"type"`
	ParcelCount int         `json:"parcelCount"`
	TotalVolume float64     `json:"totalVolume"`
	TotalWeight float64     `json:"totalWeight"`
	VolumePct   float64     `json:"volumePct"`
	WeightPct   float64     `json:"weightPct"`
}
