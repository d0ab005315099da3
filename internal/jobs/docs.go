// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron based (github.com/robfig/cron/v3, seconds enabled).
//
// # Available Jobs
//
// ShipmentTrackingJob polls the carrier for every shipment that has a waybill
// and has not finished yet, feeding each answer through the shipment
// reconciler. It is the recovery path for carrier webhooks that never arrived.
//
// # Usage
//
//	job := jobs.NewShipmentTrackingJob(refreshHandler, jobs.TrackingJobConfig{
//		Schedule:  "0 */5 * * * *",
//		BatchSize: 50,
//	}, m, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing shipment is logged by the refresh handler and never stops the
// batch. A run that cannot list shipments at all is logged and counted as
// aborted; the next scheduled run tries again.
package jobs
