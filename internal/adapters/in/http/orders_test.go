package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/generated/servers"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

func orderPath(orderID kernel.UUID, suffix string) string {
	return "/api/v1/orders/" + orderID.String() + suffix
}

func sampleDetails(orderID kernel.UUID) queries.OrderDetails {
	paidAt := createdAt.Add(time.Minute)
	return queries.OrderDetails{
		ID:        orderID,
		StoreID:   kernel.NewUUID(),
		ProductID: kernel.NewUUID(),
		Status:    "PROCESSING",
		Item: queries.ItemView{
			Name:     "Kopi Gayo 250g",
			Value:    decimal.RequireFromString("150000"),
			Quantity: 1,
			Weight:   250,
		},
		ShippingRequired: true,
		CourierCompany:   "jne",
		CourierType:      "reg",
		ShippingCost:     decimal.RequireFromString("18000"),
		Payment: &queries.PaymentView{
			Status:            "PAID",
			TransactionStatus: "settlement",
			Method:            "bank_transfer",
			Amount:            decimal.RequireFromString("168000"),
			PaidAt:            &paidAt,
		},
		CreatedAt: createdAt,
		UpdatedAt: paidAt,
	}
}

func queryFor(orderID, callerID kernel.UUID) any {
	return mock.MatchedBy(func(q queries.GetOrderDetailsQuery) bool {
		return q.OrderID().IsEqual(orderID) && q.CallerID().IsEqual(callerID)
	})
}

func TestOrderEndpoints_RequireBearerToken(t *testing.T) {
	orderID := kernel.NewUUID()

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{name: "no token"},
		{name: "not a bearer scheme", headers: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}},
		{name: "wrong secret", headers: bearer(t, kernel.NewUUID().String(), time.Hour, "other-secret")},
		{name: "expired", headers: bearer(t, kernel.NewUUID().String(), -time.Minute, testJWTSecret)},
		{name: "subject is not an id", headers: bearer(t, "operator", time.Hour, testJWTSecret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, httpadapter.ServerConfig{})

			rec := f.do(http.MethodGet, orderPath(orderID, ""), "", tt.headers)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			f.details.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestGetOrder(t *testing.T) {
	f := newFixture(t, httpadapter.ServerConfig{})
	orderID, callerID := kernel.NewUUID(), kernel.NewUUID()
	details := sampleDetails(orderID)

	f.details.On("Handle", mock.Anything, queryFor(orderID, callerID)).Return(details, nil).Once()

	rec := f.do(http.MethodGet, orderPath(orderID, ""), "", bearer(t, callerID.String(), time.Hour, testJWTSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	var got servers.OrderDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, orderID.Bytes(), got.Id)
	assert.Equal(t, "PROCESSING", got.Status)
	assert.Equal(t, "150000.00", got.Item.Value)
	require.NotNil(t, got.ShippingCost)
	assert.Equal(t, "18000.00", *got.ShippingCost)
	require.NotNil(t, got.Payment)
	assert.Equal(t, "PAID", got.Payment.Status)
	assert.Equal(t, "168000.00", got.Payment.Amount)
	assert.Nil(t, got.Shipment)
	assert.True(t, createdAt.Equal(got.CreatedAt))
}

func TestGetOrder_InvalidPathID(t *testing.T) {
	f := newFixture(t, httpadapter.ServerConfig{})

	rec := f.do(http.MethodGet, "/api/v1/orders/not-a-uuid", "", bearer(t, kernel.NewUUID().String(), time.Hour, testJWTSecret))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "unknown order", err: errs.NewObjectNotFoundError("order", "x"), wantCode: http.StatusNotFound},
		{name: "someone else's order", err: errs.NewForbiddenError("order", "x"), wantCode: http.StatusForbidden},
		{name: "storage down", err: errs.NewTransientError("load order", errors.New("dial tcp")), wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, httpadapter.ServerConfig{})
			orderID := kernel.NewUUID()
			f.details.On("Handle", mock.Anything, mock.Anything).Return(queries.OrderDetails{}, tt.err).Once()

			rec := f.do(http.MethodGet, orderPath(orderID, ""), "", bearer(t, kernel.NewUUID().String(), time.Hour, testJWTSecret))

			assert.Equal(t, tt.wantCode, rec.Code)
			var body servers.Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestProcessOrder(t *testing.T) {
	f := newFixture(t, httpadapter.ServerConfig{})
	orderID, callerID := kernel.NewUUID(), kernel.NewUUID()

	processed := f.processor.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ProcessOrderCommand) bool {
		return cmd.OrderID().IsEqual(orderID) && cmd.CallerID().IsEqual(callerID)
	})).Return(nil).Once()
	read := f.details.On("Handle", mock.Anything, queryFor(orderID, callerID)).Return(sampleDetails(orderID), nil).Once()
	mock.InOrder(processed, read)

	rec := f.do(http.MethodPost, orderPath(orderID, "/process"), "", bearer(t, callerID.String(), time.Hour, testJWTSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	var got servers.OrderDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "PROCESSING", got.Status)
}

func TestProcessOrder_PreconditionFailed(t *testing.T) {
	f := newFixture(t, httpadapter.ServerConfig{})
	orderID := kernel.NewUUID()

	f.processor.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewPreconditionFailedError("payment must be completed before processing")).Once()

	rec := f.do(http.MethodPost, orderPath(orderID, "/process"), "", bearer(t, kernel.NewUUID().String(), time.Hour, testJWTSecret))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "payment must be completed before processing")
	f.details.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateShipment(t *testing.T) {
	f := newFixture(t, httpadapter.ServerConfig{})
	storeID, orderID, shipmentID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	path := "/api/v1/stores/" + storeID.String() + "/orders/" + orderID.String() + "/shipment"

	f.shipper.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ShipOrderCommand) bool {
		return cmd.StoreID().IsEqual(storeID) && cmd.OrderID().IsEqual(orderID)
	})).Return(commands.ShipOrderResult{
		ShipmentID:     shipmentID,
		OrderID:        orderID,
		CarrierOrderID: carrierOrderRef,
		Waybill:        "WYB-1",
		CourierCompany: "jne",
		CourierType:    "reg",
		Status:         "CONFIRMED",
		Price:          decimal.RequireFromString("18000"),
	}, nil).Once()

	rec := f.do(http.MethodPost, path, "", bearer(t, kernel.NewUUID().String(), time.Hour, testJWTSecret))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got servers.ShipmentCreated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, shipmentID.Bytes(), got.ShipmentId)
	assert.Equal(t, carrierOrderRef, got.CarrierOrderId)
	require.NotNil(t, got.Waybill)
	assert.Equal(t, "WYB-1", *got.Waybill)
	assert.Nil(t, got.TrackingId)
	require.NotNil(t, got.Price)
	assert.Equal(t, "18000.00", *got.Price)
}

func TestCreateShipment_Errors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "shipment already exists",
			err:         errs.NewConflictError("shipment", "x"),
			wantCode:    http.StatusConflict,
			wantMessage: "shipment",
		},
		{
			name:        "store has no active provider",
			err:         errs.NewPreconditionFailedError("store has no active shipping provider"),
			wantCode:    http.StatusBadRequest,
			wantMessage: "store has no active shipping provider",
		},
		{
			name:        "carrier refused",
			err:         errs.NewUpstreamError("carrier", errors.New("422 invalid postal code")),
			wantCode:    http.StatusInternalServerError,
			wantMessage: http.StatusText(http.StatusInternalServerError),
		},
		{
			name:        "booked but not recorded",
			err:         errs.NewReconciliationNeededError("order", carrierOrderRef, "WYB-1", errors.New("commit failed")),
			wantCode:    http.StatusInternalServerError,
			wantMessage: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, httpadapter.ServerConfig{})
			path := "/api/v1/stores/" + kernel.NewUUID().String() + "/orders/" + kernel.NewUUID().String() + "/shipment"
			f.shipper.On("Handle", mock.Anything, mock.Anything).Return(commands.ShipOrderResult{}, tt.err).Once()

			rec := f.do(http.MethodPost, path, "", bearer(t, kernel.NewUUID().String(), time.Hour, testJWTSecret))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMessage)
		})
	}
}

func TestGetOrderTracking(t *testing.T) {
	f := newFixture(t, httpadapter.ServerConfig{})
	orderID, callerID := kernel.NewUUID(), kernel.NewUUID()
	pickedUp := createdAt.Add(3 * time.Hour)

	f.tracking.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetShipmentTrackingQuery) bool {
		return q.OrderID().IsEqual(orderID) && q.CallerID().IsEqual(callerID)
	})).Return(queries.ShipmentTracking{
		Waybill:        "WYB-1",
		CourierCompany: "jne",
		Status:         "picked",
		Link:           "https://track.example/WYB-1",
		History: []queries.TrackingEntryView{
			{Status: "confirmed"},
			{Status: "picked", Note: "picked up by courier", UpdatedAt: pickedUp},
		},
	}, nil).Once()

	rec := f.do(http.MethodGet, orderPath(orderID, "/tracking"), "", bearer(t, callerID.String(), time.Hour, testJWTSecret))

	require.Equal(t, http.StatusOK, rec.Code)
	var got servers.Tracking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "picked", got.Status)
	require.Len(t, got.History, 2)
	assert.Nil(t, got.History[0].UpdatedAt)
	require.NotNil(t, got.History[1].UpdatedAt)
	assert.True(t, pickedUp.Equal(*got.History[1].UpdatedAt))
}

func TestGetOrderTracking_CarrierFailure(t *testing.T) {
	f := newFixture(t, httpadapter.ServerConfig{})
	f.tracking.On("Handle", mock.Anything, mock.Anything).
		Return(queries.ShipmentTracking{}, errs.NewUpstreamError("carrier", errors.New("timeout"))).Once()

	rec := f.do(http.MethodGet, orderPath(kernel.NewUUID(), "/tracking"), "", bearer(t, kernel.NewUUID().String(), time.Hour, testJWTSecret))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
