package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/generated/servers"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	callerID, err := callerFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}
	orderID, err := pathID("orderId", orderId)
	if err != nil {
		return s.respondError(ctx, err)
	}

	details, err := s.orderDetails(ctx, orderID, callerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, details)
}

// ProcessOrder handles POST /api/v1/orders/{orderId}/process and answers
// with the updated order.
func (s *Server) ProcessOrder(ctx echo.Context, orderId servers.OrderId) error {
	callerID, err := callerFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}
	orderID, err := pathID("orderId", orderId)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewProcessOrderCommand(orderID, callerID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.handlers.OrderProcessor.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	details, err := s.orderDetails(ctx, orderID, callerID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, details)
}

// GetOrderTracking handles GET /api/v1/orders/{orderId}/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context, orderId servers.OrderId) error {
	callerID, err := callerFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}
	orderID, err := pathID("orderId", orderId)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetShipmentTrackingQuery(orderID, callerID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	tracking, err := s.handlers.Tracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := servers.Tracking{
		Waybill:        tracking.Waybill,
		CourierCompany: optional(tracking.CourierCompany),
		Status:         tracking.Status,
		Link:           optional(tracking.Link),
		History:        make([]servers.TrackingEntry, len(tracking.History)),
	}
	for i, entry := range tracking.History {
		response.History[i] = servers.TrackingEntry{
			Status: entry.Status,
			Note:   optional(entry.Note),
		}
		if !entry.UpdatedAt.IsZero() {
			updatedAt := entry.UpdatedAt
			response.History[i].UpdatedAt = &updatedAt
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateShipment handles POST /api/v1/stores/{storeId}/orders/{orderId}/shipment.
func (s *Server) CreateShipment(ctx echo.Context, storeId openapi_types.UUID, orderId servers.OrderId) error {
	if _, err := callerFrom(ctx); err != nil {
		return s.respondError(ctx, err)
	}
	storeID, err := pathID("storeId", storeId)
	if err != nil {
		return s.respondError(ctx, err)
	}
	orderID, err := pathID("orderId", orderId)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewShipOrderCommand(storeID, orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	result, err := s.handlers.OrderShipper.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.ShipmentCreated{
		ShipmentId:     result.ShipmentID.Bytes(),
		OrderId:        result.OrderID.Bytes(),
		CarrierOrderId: result.CarrierOrderID,
		Waybill:        optional(result.Waybill),
		TrackingId:     optional(result.TrackingID),
		CourierCompany: optional(result.CourierCompany),
		CourierType:    optional(result.CourierType),
		Status:         result.Status,
		Price:          money(result.Price),
	})
}

func (s *Server) orderDetails(ctx echo.Context, orderID, callerID kernel.UUID) (servers.OrderDetails, error) {
	query, err := queries.NewGetOrderDetailsQuery(orderID, callerID)
	if err != nil {
		return servers.OrderDetails{}, err
	}
	details, err := s.handlers.OrderDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return servers.OrderDetails{}, err
	}
	return toOrderDetails(details), nil
}

func toOrderDetails(d queries.OrderDetails) servers.OrderDetails {
	response := servers.OrderDetails{
		Id:        d.ID.Bytes(),
		StoreId:   d.StoreID.Bytes(),
		ProductId: d.ProductID.Bytes(),
		Status:    d.Status,
		Item: servers.Item{
			Name:     d.Item.Name,
			Value:    d.Item.Value.StringFixed(2),
			Quantity: d.Item.Quantity,
			Weight:   d.Item.Weight,
		},
		ShippingRequired: d.ShippingRequired,
		CourierCompany:   optional(d.CourierCompany),
		CourierType:      optional(d.CourierType),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.ShippingRequired {
		response.ShippingCost = money(d.ShippingCost)
	}

	if p := d.Payment; p != nil {
		response.Payment = &servers.Payment{
			Status:            p.Status,
			TransactionStatus: optional(p.TransactionStatus),
			Method:            optional(p.Method),
			Amount:            p.Amount.StringFixed(2),
			PaidAt:            p.PaidAt,
		}
	}

	if sh := d.Shipment; sh != nil {
		shipment := &servers.Shipment{
			Id:             sh.ID.Bytes(),
			CarrierOrderId: sh.CarrierOrderID,
			Waybill:        optional(sh.Waybill),
			TrackingId:     optional(sh.TrackingID),
			CourierCompany: optional(sh.CourierCompany),
			CourierType:    optional(sh.CourierType),
			Status:         sh.Status,
			Price:          money(sh.Price),
			History:        make([]servers.TrackingEvent, len(sh.History)),
		}
		for i, event := range sh.History {
			shipment.History[i] = servers.TrackingEvent{
				Status:     event.Status,
				Note:       optional(event.Note),
				OccurredAt: event.OccurredAt,
			}
		}
		response.Shipment = shipment
	}

	return response
}

func pathID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func money(d decimal.Decimal) *string {
	s := d.StringFixed(2)
	return &s
}
