package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelStatusQueryHandler answers tracking lookups. The tracking cache is
// consulted first; on a miss the status is read from the database and the
// cache is refilled. Cache failures degrade to a plain database read and are
// logged, never surfaced to the caller.
type GetParcelStatusQueryHandler struct {
	db     *gorm.DB
	cache  ports.StatusCache
	logger *slog.Logger
}

// NewGetParcelStatusQueryHandler creates a handler for tracking lookups.
// The cache may be nil, in which case every lookup goes to the database.
func NewGetParcelStatusQueryHandler(db *gorm.DB, cache ports.StatusCache, logger *slog.Logger) GetParcelStatusQueryHandler {
	return GetParcelStatusQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "get_parcel_status_query_handler"),
	}
}

// Handle resolves the tracking number to its current status projection.
// Returns errs.ErrObjectNotFound when no parcel carries the tracking number.
func (h GetParcelStatusQueryHandler) Handle(
	ctx context.Context,
	query GetParcelStatusQuery,
) (GetParcelStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelStatusQueryResponse{}, err
	}

	if h.cache != nil {
		snapshot, hit, err := h.cache.Get(ctx, query.TrackingNo())
		if err != nil {
			h.logger.WarnContext(ctx, "Tracking cache read failed", "trackingNo", query.TrackingNo(), "error", err)
		}
		if hit {
			return responseFromSnapshot(snapshot), nil
		}
	}

	response, err := h.readFromStorage(ctx, query.TrackingNo())
	if err != nil {
		return GetParcelStatusQueryResponse{}, err
	}

	if h.cache != nil {
		if err = h.cache.Set(ctx, snapshotFromResponse(response)); err != nil {
			h.logger.WarnContext(ctx, "Tracking cache refill failed", "trackingNo", query.TrackingNo(), "error", err)
		}
	}

	return response, nil
}

func (h GetParcelStatusQueryHandler) readFromStorage(
	ctx context.Context,
	trackingNo string,
) (GetParcelStatusQueryResponse, error) {
	var (
		statusName string
		updatedAt  time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			updated_at
		FROM parcels
		WHERE tracking_no = ?
	`, trackingNo).Row()

	err := row.Scan(&statusName, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetParcelStatusQueryResponse{}, errs.NewObjectNotFoundError("trackingNo", trackingNo)
	}
	if err != nil {
		return GetParcelStatusQueryResponse{}, err
	}

	status, err := parcel.StatusFromString(statusName)
	if err != nil {
		return GetParcelStatusQueryResponse{}, err
	}

	progress, linear := status.Progress()
	return GetParcelStatusQueryResponse{
		TrackingNo:  trackingNo,
		Status:      status.String(),
		ProgressPct: progress,
		Linear:      linear,
		UpdatedAt:   updatedAt,
	}, nil
}

func responseFromSnapshot(snapshot ports.TrackingSnapshot) GetParcelStatusQueryResponse {
	return GetParcelStatusQueryResponse{
		TrackingNo:  snapshot.TrackingNo,
		Status:      snapshot.Status,
		ProgressPct: snapshot.ProgressPct,
		Linear:      snapshot.Linear,
		UpdatedAt:   snapshot.UpdatedAt,
	}
}

func snapshotFromResponse(response GetParcelStatusQueryResponse) ports.TrackingSnapshot {
	return ports.TrackingSnapshot{
		TrackingNo:  response.TrackingNo,
		Status:      response.Status,
		ProgressPct: response.ProgressPct,
		Linear:      response.Linear,
		UpdatedAt:   response.UpdatedAt,
	}
}
