package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	shipmentTrackingJob *ShipmentTrackingJob
}

func NewJobManager(shipmentTrackingJob *ShipmentTrackingJob) *JobManager {
	return &JobManager{
		shipmentTrackingJob: shipmentTrackingJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.shipmentTrackingJob.Start(); err != nil {
		return fmt.Errorf("failed to start shipment tracking job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones.
func (jm *JobManager) StopAll() {
	jm.shipmentTrackingJob.Stop()
}
