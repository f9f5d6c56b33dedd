package commands

import (
	"errors"

	"parcelhub/internal/pkg/guard"
)

var ErrSchedulePickupsCommandIsNotConstructed = errors.New(
	"SchedulePickupsCommand must be created via NewSchedulePickupsCommand constructor",
)

// SchedulePickupsCommand triggers a pickup planning round. Every placed pickup
// parcel that is not yet on a round gets packed into next-day morning buckets
// of the pickup fleet serving its origin branch. Parcels that do not fit stay
// pending and are retried on the next round.
//
// Example:
//
//	cmd := NewSchedulePickupsCommand()
//	handler := NewSchedulePickupsCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Nothing to schedule or no fleet available: %v", err)
//	}
type SchedulePickupsCommand struct {
	guard guard.ConstructorGuard
}

// NewSchedulePickupsCommand creates a new command to trigger pickup planning.
// This is a parameterless command that initiates the parcel-vehicle packing process.
func NewSchedulePickupsCommand() SchedulePickupsCommand {
	return SchedulePickupsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSchedulePickupsCommandIsNotConstructed if validation fails.
func (c *SchedulePickupsCommand) Validate() error {
	return c.guard.Validate(
		ErrSchedulePickupsCommandIsNotConstructed,
	)
}
