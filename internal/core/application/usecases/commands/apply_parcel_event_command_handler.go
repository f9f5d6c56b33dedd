package commands

import (
	"context"
	"log/slog"
	"time"

	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/ports"
)

// TransitionResult is the outcome of a committed parcel transition.
type TransitionResult struct {
	NewStatus parcel.Status
	Timestamp time.Time
}

// ApplyParcelEventCommandHandler advances a parcel's lifecycle inside a
// transaction, then publishes the status change and drops the tracking cache
// entry. Publish and cache failures are logged, never rolled into the result:
// the transition is already committed.
type ApplyParcelEventCommandHandler struct {
	uowFactory ParcelUoWFactory
	publisher  ports.EventPublisher
	cache      ports.StatusCache
	logger     *slog.Logger
}

// NewApplyParcelEventCommandHandler creates a handler for parcel transitions.
func NewApplyParcelEventCommandHandler(
	uowFactory ParcelUoWFactory,
	publisher ports.EventPublisher,
	cache ports.StatusCache,
	logger *slog.Logger,
) ApplyParcelEventCommandHandler {
	return ApplyParcelEventCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the transition command and returns the committed status and
// its timestamp. Any rejection leaves the parcel unchanged.
func (h *ApplyParcelEventCommandHandler) Handle(ctx context.Context, cmd ApplyParcelEventCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return TransitionResult{}, err
	}

	oldStatus := aggregate.Status()
	if err = aggregate.ApplyEvent(cmd.Event(), now); err != nil {
		return TransitionResult{}, err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.notify(ctx, aggregate, oldStatus, now)

	return TransitionResult{NewStatus: aggregate.Status(), Timestamp: now}, nil
}

func (h *ApplyParcelEventCommandHandler) notify(ctx context.Context, aggregate *parcel.Parcel, oldStatus parcel.Status, at time.Time) {
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, aggregate.TrackingNo()); err != nil {
			h.logger.Warn("invalidate tracking cache",
				slog.String("trackingNo", aggregate.TrackingNo()), slog.Any("error", err))
		}
	}

	if h.publisher != nil {
		event := ports.ParcelStatusChanged{
			ParcelID:   aggregate.ID().String(),
			TrackingNo: aggregate.TrackingNo(),
			OldStatus:  oldStatus.String(),
			NewStatus:  aggregate.Status().String(),
			OccurredAt: at,
		}
		if err := h.publisher.PublishParcelStatusChanged(ctx, event); err != nil {
			h.logger.Warn("publish parcel status change",
				slog.String("trackingNo", aggregate.TrackingNo()), slog.Any("error", err))
		}
	}
}
