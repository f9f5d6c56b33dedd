package commands

import (
	"context"
)

// UnassignParcelCommandHandler removes a parcel from a schedule bucket and
// returns its volume and weight to the pool. The bucket record is retained
// even when it becomes empty. The parcel's status is untouched: unassignment
// corrects a scheduling decision, not the parcel's history.
type UnassignParcelCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

// NewUnassignParcelCommandHandler creates a handler for schedule removals.
func NewUnassignParcelCommandHandler(uowFactory ScheduleUoWFactory) UnassignParcelCommandHandler {
	return UnassignParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal. Removing a parcel that is not in the bucket
// fails with an ObjectNotFoundError.
func (h *UnassignParcelCommandHandler) Handle(ctx context.Context, cmd UnassignParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	schedule, err := uow.ScheduleRepository().Get(ctx, cmd.ScheduleID())
	if err != nil {
		return err
	}

	aggregate, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = schedule.Unassign(aggregate.ID(), aggregate.Size()); err != nil {
		return err
	}

	if err = uow.ScheduleRepository().Update(ctx, schedule); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
