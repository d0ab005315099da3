package http

import (
	"context"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/generated/servers"
	"storefront/internal/pkg/metrics"

	"go.uber.org/zap"
)

type (
	PaymentReconciler interface {
		Handle(ctx context.Context, command commands.ReconcilePaymentCommand) error
	}

	ShipmentReconciler interface {
		Handle(ctx context.Context, command commands.ReconcileShipmentCommand) error
	}

	OrderProcessor interface {
		Handle(ctx context.Context, command commands.ProcessOrderCommand) error
	}

	OrderShipper interface {
		Handle(ctx context.Context, command commands.ShipOrderCommand) (commands.ShipOrderResult, error)
	}

	OrderDetailsReader interface {
		Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.OrderDetails, error)
	}

	TrackingReader interface {
		Handle(ctx context.Context, query queries.GetShipmentTrackingQuery) (queries.ShipmentTracking, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	PaymentReconciler  PaymentReconciler
	ShipmentReconciler ShipmentReconciler
	OrderProcessor     OrderProcessor
	OrderShipper       OrderShipper
	OrderDetails       OrderDetailsReader
	Tracking           TrackingReader
}

// ServerConfig holds the webhook settings. An empty key or secret turns the
// matching signature check off.
type ServerConfig struct {
	WebhookTimeout       time.Duration
	PaymentServerKey     string
	CarrierWebhookSecret string
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// Webhook endpoints acknowledge everything that is not worth redelivering;
// the order endpoints answer with the error mapping in errors.go.
type Server struct {
	config   ServerConfig
	handlers Handlers
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewServer(config ServerConfig, handlers Handlers, m *metrics.Metrics, logger *zap.Logger) *Server {
	return &Server{
		config:   config,
		handlers: handlers,
		metrics:  m,
		logger:   logger.With(zap.String("component", "http")),
	}
}

func (s *Server) webhookContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.config.WebhookTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.config.WebhookTimeout)
}
