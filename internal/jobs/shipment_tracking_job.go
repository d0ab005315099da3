package jobs

import (
	"context"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultTrackingSchedule  = "0 */5 * * * *"
	DefaultTrackingBatchSize = 50
	DefaultTrackingTimeout   = 2 * time.Minute
)

// TrackingRefresher is the use case a tracking run executes.
type TrackingRefresher interface {
	Handle(
		ctx context.Context,
		command commands.RefreshShipmentTrackingCommand,
	) (commands.RefreshShipmentTrackingResult, error)
}

// TrackingJobConfig controls the tracking poll. Schedule is a six field cron
// expression (with seconds).
type TrackingJobConfig struct {
	Schedule  string
	BatchSize int
	Timeout   time.Duration
}

// ShipmentTrackingJob polls the carrier for unfinished shipments so that a
// lost status webhook is eventually applied anyway.
// A run that is still going when the next one is due makes the next one skip.
type ShipmentTrackingJob struct {
	handler TrackingRefresher
	config  TrackingJobConfig
	cron    *cron.Cron
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewShipmentTrackingJob(
	handler TrackingRefresher,
	config TrackingJobConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ShipmentTrackingJob {
	if config.Schedule == "" {
		config.Schedule = DefaultTrackingSchedule
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultTrackingBatchSize
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTrackingTimeout
	}

	return &ShipmentTrackingJob{
		handler: handler,
		config:  config,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		metrics: m,
		logger:  logger.With(zap.String("component", "shipment_tracking_job")),
	}
}

// Start schedules the job. It fails on an invalid cron expression.
func (j *ShipmentTrackingJob) Start() error {
	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("shipment tracking job started",
		zap.String("schedule", j.config.Schedule),
		zap.Int("batch_size", j.config.BatchSize),
	)
	return nil
}

// Stop stops scheduling and waits for a running refresh to finish.
func (j *ShipmentTrackingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("shipment tracking job stopped")
}

// RunOnce refreshes one batch of shipments.
func (j *ShipmentTrackingJob) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	cmd, err := commands.NewRefreshShipmentTrackingCommand(j.config.BatchSize)
	if err != nil {
		j.logger.Error("invalid tracking refresh command", zap.Error(err))
		return
	}

	start := time.Now()
	result, err := j.handler.Handle(ctx, cmd)
	j.metrics.ObserveTrackingRefresh(metrics.RefreshApplied, result.Applied)
	j.metrics.ObserveTrackingRefresh(metrics.RefreshFailed, result.Failed)
	if err != nil {
		j.metrics.ObserveTrackingRefresh(metrics.RefreshAborted, 1)
		j.logger.Error("shipment tracking run aborted",
			zap.Int("checked", result.Checked),
			zap.Error(err),
		)
		return
	}

	if result.Checked > 0 {
		j.logger.Info("shipment tracking run finished",
			zap.Int("checked", result.Checked),
			zap.Int("applied", result.Applied),
			zap.Int("failed", result.Failed),
			zap.Duration("took", time.Since(start)),
		)
	}
}
