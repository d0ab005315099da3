package cmd

import (
	"time"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/carrier"
	"storefront/internal/adapters/out/lock"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/storerepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     ports.OrderLocker
	carrier    ports.CarrierClient
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewCompositionRoot wires the adapters. redisClient may be nil, in which
// case orders are locked in process.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient redis.UniversalClient,
	logger *zap.Logger,
) (*CompositionRoot, error) {
	carrierClient, err := carrier.NewClient(carrier.Config{
		BaseURL: config.Carrier.BaseURL,
		APIKey:  config.Carrier.APIKey,
		Timeout: config.Carrier.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	var locker ports.OrderLocker = lock.NewKeyedMutex()
	if redisClient != nil {
		locker = lock.NewRedisLocker(redisClient, lock.RedisLockerConfig{}, logger)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locker,
		carrier:    carrierClient,
		registry:   registry,
		metrics:    metrics.New(registry),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) clock() commands.Clock {
	return func() time.Time {
		return time.Now().UTC()
	}
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(c.paymentUoWFactory(), c.locker, c.clock(), c.logger)
}

func (c *CompositionRoot) CreateReconcileShipmentCommandHandler() commands.ReconcileShipmentCommandHandler {
	return commands.NewReconcileShipmentCommandHandler(c.shipmentUoWFactory(), c.locker, c.clock(), c.logger)
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(c.paymentUoWFactory(), c.locker, c.clock(), c.logger)
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(
		c.orderUoWFactory(),
		storerepo.NewGormStoreRepository(c.gormDB),
		c.carrier,
		c.locker,
		c.clock(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateRefreshShipmentTrackingCommandHandler() commands.RefreshShipmentTrackingCommandHandler {
	return commands.NewRefreshShipmentTrackingCommandHandler(
		c.shipmentUoWFactory(),
		c.carrier,
		c.CreateReconcileShipmentCommandHandler(),
		c.clock(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentTrackingQueryHandler() queries.GetShipmentTrackingQueryHandler {
	return queries.NewGetShipmentTrackingQueryHandler(c.gormDB, c.carrier)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.ServerConfig{
		WebhookTimeout:       c.config.HTTP.WebhookTimeout,
		PaymentServerKey:     c.config.Payment.ServerKey,
		CarrierWebhookSecret: c.config.Carrier.WebhookSecret,
	}, httpadapter.Handlers{
		PaymentReconciler:  c.CreateReconcilePaymentCommandHandler(),
		ShipmentReconciler: c.CreateReconcileShipmentCommandHandler(),
		OrderProcessor:     c.CreateProcessOrderCommandHandler(),
		OrderShipper:       c.CreateShipOrderCommandHandler(),
		OrderDetails:       c.CreateGetOrderDetailsQueryHandler(),
		Tracking:           c.CreateGetShipmentTrackingQueryHandler(),
	}, c.metrics, c.logger)
}

func (c *CompositionRoot) JWTConfig() httpadapter.JWTConfig {
	return httpadapter.JWTConfig{
		Secret: c.config.JWT.Secret,
		Issuer: c.config.JWT.Issuer,
	}
}

func (c *CompositionRoot) Gatherer() prometheus.Gatherer {
	return c.registry
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(jobs.NewShipmentTrackingJob(
		c.CreateRefreshShipmentTrackingCommandHandler(),
		jobs.TrackingJobConfig{
			Schedule:  c.config.Tracking.Schedule,
			BatchSize: c.config.Tracking.BatchSize,
			Timeout:   c.config.Tracking.Timeout,
		},
		c.metrics,
		c.logger,
	))
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
