// Package metrics holds the Prometheus counters shared by the inbound
// adapters: the webhook gateway and the tracking refresh job.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	WebhookNotificationsTotal = "storefront_webhook_notifications_total"
	TrackingRefreshTotal      = "storefront_tracking_refresh_total"
)

// Notification sources.
const (
	SourcePayment = "payment"
	SourceCarrier = "carrier"
)

// Webhook outcomes.
const (
	OutcomeProcessed = "processed"
	OutcomeUnmatched = "unmatched"
	OutcomeRejected  = "rejected"
	OutcomeTransient = "transient"
)

// Tracking refresh outcomes.
const (
	RefreshApplied = "applied"
	RefreshFailed  = "failed"
	RefreshAborted = "aborted"
)

// Metrics counts reconciliation outcomes.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	webhookNotifications *prometheus.CounterVec
	trackingRefresh      *prometheus.CounterVec
}

// New creates the counters and registers them with registerer.
// It panics if they are already registered there.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		webhookNotifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: WebhookNotificationsTotal,
				Help: "Webhook notifications received, by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		trackingRefresh: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: TrackingRefreshTotal,
				Help: "Shipments refreshed from carrier tracking, by outcome",
			},
			[]string{"outcome"},
		),
	}

	registerer.MustRegister(m.webhookNotifications, m.trackingRefresh)

	return m
}

func (m *Metrics) ObserveWebhook(source, outcome string) {
	m.webhookNotifications.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) ObserveTrackingRefresh(outcome string, count int) {
	if count <= 0 {
		return
	}
	m.trackingRefresh.WithLabelValues(outcome).Add(float64(count))
}
