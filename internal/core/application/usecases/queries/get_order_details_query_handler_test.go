package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/paymentrepo"
	"storefront/internal/adapters/out/postgres/shipmentrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/shipment"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var createdAt = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type GetOrderDetailsQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetOrderDetailsQueryHandler
	orderRepo    *orderrepo.GormOrderRepository
	paymentRepo  *paymentrepo.GormPaymentRepository
	shipmentRepo *shipmentrepo.GormShipmentRepository
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(postgres_adapter.Models()...))

	suite.handler = queries.NewGetOrderDetailsQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
	suite.paymentRepo = paymentrepo.NewGormPaymentRepository(db)
	suite.shipmentRepo = shipmentrepo.NewGormShipmentRepository(db)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, payments, shipments, shipment_tracking_events").Error)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) addOrder(userID kernel.UUID) *order.Order {
	item, err := order.NewItem("Batik Shirt", decimal.NewFromInt(150000), 2, 400)
	suite.Require().NoError(err)
	recipient, err := kernel.NewContact("Sari", "+628123", "", "Jl. Merdeka 1", "10110")
	suite.Require().NoError(err)
	shipping, err := order.NewShipping(recipient, "jne", "reg", decimal.NewFromInt(18000))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Details{
		StoreID:   kernel.NewUUID(),
		UserID:    userID,
		ProductID: kernel.NewUUID(),
		Item:      item,
		Shipping:  shipping,
	}, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) handle(orderID, callerID kernel.UUID) (queries.OrderDetails, error) {
	query, err := queries.NewGetOrderDetailsQuery(orderID, callerID)
	suite.Require().NoError(err)
	return suite.handler.Handle(context.Background(), query)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestOrderWithoutPaymentOrShipment() {
	userID := kernel.NewUUID()
	o := suite.addOrder(userID)

	details, err := suite.handle(o.ID(), userID)
	suite.Require().NoError(err)

	suite.Equal(o.ID(), details.ID)
	suite.Equal("PENDING", details.Status)
	suite.Equal("Batik Shirt", details.Item.Name)
	suite.Equal(2, details.Item.Quantity)
	suite.True(details.ShippingRequired)
	suite.True(decimal.NewFromInt(18000).Equal(details.ShippingCost))
	suite.Nil(details.Payment)
	suite.Nil(details.Shipment)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestOrderWithPaymentAndShipment() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	o := suite.addOrder(userID)

	p, err := payment.NewPayment(kernel.NewUUID(), o.ID(), "qris", decimal.NewFromInt(168000), createdAt)
	suite.Require().NoError(err)
	paidAt := createdAt.Add(5 * time.Minute)
	suite.Require().True(p.ApplyNotification(payment.Notification{Status: payment.Paid, TransactionStatus: "settlement"}, paidAt))
	suite.Require().NoError(suite.paymentRepo.Add(ctx, p))

	s, err := shipment.NewShipment(kernel.NewUUID(), o.ID(), shipment.CarrierOrder{
		CarrierOrderID: "co-1",
		Waybill:        "WYB1",
		CourierCompany: "jne",
		CourierType:    "reg",
		Price:          decimal.NewFromInt(18000),
	}, o.Shipping().Recipient(), createdAt.Add(time.Hour))
	suite.Require().NoError(err)
	accepted, _ := s.ApplyCarrierUpdate(shipment.CarrierUpdate{
		Status:     shipment.PickedUp,
		Note:       "picked up",
		OccurredAt: createdAt.Add(2 * time.Hour),
	}, createdAt.Add(2*time.Hour))
	suite.Require().True(accepted)
	suite.Require().NoError(suite.shipmentRepo.Add(ctx, s))

	details, err := suite.handle(o.ID(), userID)
	suite.Require().NoError(err)

	suite.Require().NotNil(details.Payment)
	suite.Equal("PAID", details.Payment.Status)
	suite.Equal("settlement", details.Payment.TransactionStatus)
	suite.Require().NotNil(details.Payment.PaidAt)
	suite.True(paidAt.Equal(*details.Payment.PaidAt))

	suite.Require().NotNil(details.Shipment)
	suite.Equal(s.ID(), details.Shipment.ID)
	suite.Equal("WYB1", details.Shipment.Waybill)
	suite.Equal("PICKED_UP", details.Shipment.Status)
	suite.Require().Len(details.Shipment.History, 2)
	suite.Equal("CONFIRMED", details.Shipment.History[0].Status)
	suite.Equal("PICKED_UP", details.Shipment.History[1].Status)
	suite.Equal("picked up", details.Shipment.History[1].Note)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestOtherCallerIsForbidden() {
	o := suite.addOrder(kernel.NewUUID())

	_, err := suite.handle(o.ID(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestUnknownOrder() {
	_, err := suite.handle(kernel.NewUUID(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderDetailsQueryHandlerTestSuite) TestUnconstructedQuery() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderDetailsQuery{})
	suite.ErrorIs(err, queries.ErrGetOrderDetailsQueryIsNotConstructed)
}

func TestGetOrderDetailsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderDetailsQueryHandlerTestSuite))
}
