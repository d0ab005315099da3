// Package servers provides primitives to interact with the openapi HTTP API.
//
// Types and the echo server wrapper follow the layout oapi-codegen produces
// for openapi.yaml; keep both in sync when the document changes.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Acknowledgement defines model for Acknowledgement.
type Acknowledgement struct {
	Status string `json:"status"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Item defines model for Item.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Value    string `json:"value"`
	Weight   int    `json:"weight"`
}

// OrderDetails defines model for OrderDetails.
type OrderDetails struct {
	CourierCompany   *string            `json:"courier_company,omitempty"`
	CourierType      *string            `json:"courier_type,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	Id               openapi_types.UUID `json:"id"`
	Item             Item               `json:"item"`
	Payment          *Payment           `json:"payment,omitempty"`
	ProductId        openapi_types.UUID `json:"product_id"`
	Shipment         *Shipment          `json:"shipment,omitempty"`
	ShippingCost     *string            `json:"shipping_cost,omitempty"`
	ShippingRequired bool               `json:"shipping_required"`
	Status           string             `json:"status"`
	StoreId          openapi_types.UUID `json:"store_id"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// Payment defines model for Payment.
type Payment struct {
	Amount            string     `json:"amount"`
	Method            *string    `json:"method,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	Status            string     `json:"status"`
	TransactionStatus *string    `json:"transaction_status,omitempty"`
}

// PaymentNotification defines model for PaymentNotification.
type PaymentNotification struct {
	FraudStatus       *string `json:"fraud_status,omitempty"`
	GrossAmount       string  `json:"gross_amount" validate:"required,numeric"`
	OrderId           string  `json:"order_id" validate:"required"`
	PaymentType       *string `json:"payment_type,omitempty"`
	SignatureKey      *string `json:"signature_key,omitempty"`
	StatusCode        *string `json:"status_code,omitempty"`
	TransactionStatus string  `json:"transaction_status" validate:"required"`
}

// Shipment defines model for Shipment.
type Shipment struct {
	CarrierOrderId string             `json:"carrier_order_id"`
	CourierCompany *string            `json:"courier_company,omitempty"`
	CourierType    *string            `json:"courier_type,omitempty"`
	History        []TrackingEvent    `json:"history"`
	Id             openapi_types.UUID `json:"id"`
	Price          *string            `json:"price,omitempty"`
	Status         string             `json:"status"`
	TrackingId     *string            `json:"tracking_id,omitempty"`
	Waybill        *string            `json:"waybill,omitempty"`
}

// ShipmentCreated defines model for ShipmentCreated.
type ShipmentCreated struct {
	CarrierOrderId string             `json:"carrier_order_id"`
	CourierCompany *string            `json:"courier_company,omitempty"`
	CourierType    *string            `json:"courier_type,omitempty"`
	OrderId        openapi_types.UUID `json:"order_id"`
	Price          *string            `json:"price,omitempty"`
	ShipmentId     openapi_types.UUID `json:"shipment_id"`
	Status         string             `json:"status"`
	TrackingId     *string            `json:"tracking_id,omitempty"`
	Waybill        *string            `json:"waybill,omitempty"`
}

// ShipmentNotification defines model for ShipmentNotification.
type ShipmentNotification struct {
	CourierCompany    *string    `json:"courier_company,omitempty"`
	CourierTrackingId *string    `json:"courier_tracking_id,omitempty"`
	CourierType       *string    `json:"courier_type,omitempty"`
	Event             *string    `json:"event,omitempty"`
	Note              *string    `json:"note,omitempty"`
	OrderId           string     `json:"order_id" validate:"required"`
	Status            *string    `json:"status,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
	WaybillId         *string    `json:"waybill_id,omitempty"`
}

// Tracking defines model for Tracking.
type Tracking struct {
	CourierCompany *string         `json:"courier_company,omitempty"`
	History        []TrackingEntry `json:"history"`
	Link           *string         `json:"link,omitempty"`
	Status         string          `json:"status"`
	Waybill        string          `json:"waybill"`
}

// TrackingEntry defines model for TrackingEntry.
type TrackingEntry struct {
	Note      *string    `json:"note,omitempty"`
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TrackingEvent defines model for TrackingEvent.
type TrackingEvent struct {
	Note       *string   `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Status     string    `json:"status"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// ReceivePaymentNotificationJSONRequestBody defines body for ReceivePaymentNotification for application/json ContentType.
type ReceivePaymentNotificationJSONRequestBody = PaymentNotification

// ReceiveShipmentNotificationJSONRequestBody defines body for ReceiveShipmentNotification for application/json ContentType.
type ReceiveShipmentNotificationJSONRequestBody = ShipmentNotification

// ReceiveShipmentNotificationParams defines parameters for ReceiveShipmentNotification.
type ReceiveShipmentNotificationParams struct {
	XCarrierSignature *string `json:"X-Carrier-Signature,omitempty"`
}
