package queries

import (
	"errors"
	"time"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var ErrGetParcelStatusQueryIsNotConstructed = errors.New(
	"GetParcelStatusQuery must be created via NewGetParcelStatusQuery constructor",
)

// GetParcelStatusQuery retrieves the current tracking state of a parcel by its
// tracking number. The answer is served from the tracking cache when possible
// and read through to storage otherwise.
//
// Example:
//
//	query, err := NewGetParcelStatusQuery("PT2026011500a1b2c3")
//	if err != nil {
//	    return err
//	}
//	handler := NewGetParcelStatusQueryHandler(db, cache, logger)
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get parcel status: %w", err)
//	}
//
//	fmt.Printf("Parcel %s is %s (%.0f%%)\n",
//	    status.TrackingNo, status.Status, status.ProgressPct)
type GetParcelStatusQuery struct {
	trackingNo string

	guard guard.ConstructorGuard
}

// NewGetParcelStatusQuery creates a query for one tracking number.
func NewGetParcelStatusQuery(trackingNo string) (GetParcelStatusQuery, error) {
	if trackingNo == "" {
		return GetParcelStatusQuery{}, errs.NewValueIsRequiredError("trackingNo")
	}

	return GetParcelStatusQuery{
		trackingNo: trackingNo,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TrackingNo returns the tracking number being looked up.
func (q GetParcelStatusQuery) TrackingNo() string { return q.trackingNo }

// Validate ensures the query was created through the constructor.
// Returns ErrGetParcelStatusQueryIsNotConstructed if validation fails.
func (q GetParcelStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelStatusQueryIsNotConstructed)
}

// GetParcelStatusQueryResponse is the tracking projection for one parcel.
// Linear is false for exception states (refused, wrong address, returned),
// which have no position on the happy-path progression; their ProgressPct is
// zero and should not be rendered as a progress bar.
type GetParcelStatusQueryResponse struct {
	TrackingNo  string    `json:"trackingNo"`
	Status      string    `json:"status"`
	ProgressPct float64   `json:"progressPct"`
	Linear      bool      `json:"linear"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
