package queries

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetScheduleSummaryQueryHandler reads a vehicle's schedule buckets straight
// from the database, joining the vehicle row for its capacity so utilization
// can be computed in one pass.
type GetScheduleSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetScheduleSummaryQueryHandler creates a handler for schedule summaries.
// Requires a GORM database connection for query execution.
func NewGetScheduleSummaryQueryHandler(db *gorm.DB) GetScheduleSummaryQueryHandler {
	return GetScheduleSummaryQueryHandler{db: db}
}

// Handle executes the summary query. Buckets come back ordered by date and
// slot; a vehicle with zero capacity on a dimension reports 0% utilization on
// it. An empty result means the vehicle has no buckets in the range, not that
// the vehicle is missing.
func (h GetScheduleSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetScheduleSummaryQuery,
) ([]GetScheduleSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	buckets := make([]GetScheduleSummaryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.date,
			s.slot,
			s.schedule_type,
			COALESCE(cardinality(s.parcel_ids), 0),
			s.total_volume,
			s.total_weight,
			v.capable_volume,
			v.capable_weight
		FROM schedules s
		JOIN vehicles v ON v.id = s.vehicle_id
		WHERE s.vehicle_id = ?
		  AND s.date BETWEEN ? AND ?
		ORDER BY s.date, s.slot
	`, query.VehicleID().String(), query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id            uuid.UUID
			date          time.Time
			slot          string
			scheduleType  string
			parcelCount   int
			totalVolume   float64
			totalWeight   float64
			capableVolume float64
			capableWeight float64
		)

		err = rows.Scan(
			&id,
			&date,
			&slot,
			&scheduleType,
			&parcelCount,
			&totalVolume,
			&totalWeight,
			&capableVolume,
			&capableWeight,
		)
		if err != nil {
			return nil, err
		}

		scheduleID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		buckets = append(buckets, GetScheduleSummaryQueryResponse{
			ScheduleID:  scheduleID,
			Date:        date,
			Slot:        slot,
			Type:        scheduleType,
			ParcelCount: parcelCount,
			TotalVolume: totalVolume,
			TotalWeight: totalWeight,
			VolumePct:   utilizationPct(totalVolume, capableVolume),
			WeightPct:   utilizationPct(totalWeight, capableWeight),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return buckets, nil
}

// utilizationPct guards the zero-capacity edge: an uncapable dimension is
// reported as 0% rather than dividing by zero.
func utilizationPct(total, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return total / capacity * 100
}
