package jobs

import (
	"context"
	"errors"
	"log/slog"

	"parcelhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PickupAssignmentJob manages the scheduled planning of pickup rounds.
// Runs every five minutes to pack unplanned pickup parcels into next-day
// morning schedules of the pickup fleet.
type PickupAssignmentJob struct {
	handler commands.SchedulePickupsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPickupAssignmentJob creates a new job for planning pickup rounds.
// Uses SchedulePickupsCommandHandler to run a planning round every five minutes.
func NewPickupAssignmentJob(handler commands.SchedulePickupsCommandHandler, logger *slog.Logger) *PickupAssignmentJob {
	return &PickupAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "pickup_assignment_job"),
	}
}

// Start begins the pickup assignment job to run every five minutes.
func (j *PickupAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSchedulePickupsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoParcelsPendingPickup) && !errors.Is(err, commands.ErrNoVehiclesAvailable) {
				j.logger.ErrorContext(ctx, "Pickup assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pickup assignment job started (running every five minutes)")
	return nil
}

// Stop stops the pickup assignment job.
func (j *PickupAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pickup assignment job stopped")
}
