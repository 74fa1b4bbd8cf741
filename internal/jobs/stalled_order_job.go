package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StalledOrderJob periodically reports orders that hold a live resumption
// token but have not advanced within the stall threshold. It never mutates
// orders; a stalled run is resumed by the next external signal, not by the
// watchdog.
type StalledOrderJob struct {
	handler   queries.GetStalledOrdersQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStalledOrderJob creates a new watchdog job for stalled workflow runs.
// Uses GetStalledOrdersQueryHandler to scan for stalled orders every minute.
func NewStalledOrderJob(
	handler queries.GetStalledOrdersQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StalledOrderJob {
	return &StalledOrderJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stalled_order_job"),
	}
}

// Start begins the stalled-order job to run every minute.
func (j *StalledOrderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.runOnce(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled order job started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the stalled-order job.
func (j *StalledOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stalled order job stopped")
}

func (j *StalledOrderJob) runOnce(ctx context.Context) {
	query, err := queries.NewGetStalledOrdersQuery(j.threshold)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stalled order job misconfigured", "error", err)
		return
	}

	stalled, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stalled order scan failed", "error", err)
		return
	}

	for _, snapshot := range stalled {
		waitingFor := time.Duration(0)
		if snapshot.UpdatedAt != nil {
			waitingFor = time.Since(*snapshot.UpdatedAt).Round(time.Second)
		}
		j.logger.WarnContext(ctx, "Order is stalled awaiting its next step",
			"tenantId", snapshot.TenantID,
			"orderId", snapshot.OrderID,
			"status", snapshot.Status,
			"currentStep", snapshot.CurrentStep,
			"waitingFor", waitingFor.String())
	}
}
