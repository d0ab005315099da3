package http_test

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockPaymentReconciler struct{ mock.Mock }

func (m *MockPaymentReconciler) Handle(ctx context.Context, command commands.ReconcilePaymentCommand) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

type MockShipmentReconciler struct{ mock.Mock }

func (m *MockShipmentReconciler) Handle(ctx context.Context, command commands.ReconcileShipmentCommand) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

type MockOrderProcessor struct{ mock.Mock }

func (m *MockOrderProcessor) Handle(ctx context.Context, command commands.ProcessOrderCommand) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

type MockOrderShipper struct{ mock.Mock }

func (m *MockOrderShipper) Handle(
	ctx context.Context,
	command commands.ShipOrderCommand,
) (commands.ShipOrderResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.ShipOrderResult), args.Error(1)
}

type MockOrderDetailsReader struct{ mock.Mock }

func (m *MockOrderDetailsReader) Handle(
	ctx context.Context,
	query queries.GetOrderDetailsQuery,
) (queries.OrderDetails, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderDetails), args.Error(1)
}

type MockTrackingReader struct{ mock.Mock }

func (m *MockTrackingReader) Handle(
	ctx context.Context,
	query queries.GetShipmentTrackingQuery,
) (queries.ShipmentTracking, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ShipmentTracking), args.Error(1)
}
