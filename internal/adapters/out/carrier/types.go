package carrier

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type orderRequest struct {
	ShipperContactName      string      `json:"shipper_contact_name"`
	ShipperContactPhone     string      `json:"shipper_contact_phone"`
	ShipperContactEmail     string      `json:"shipper_contact_email,omitempty"`
	ShipperOrganization     string      `json:"shipper_organization,omitempty"`
	OriginContactName       string      `json:"origin_contact_name"`
	OriginContactPhone      string      `json:"origin_contact_phone"`
	OriginAddress           string      `json:"origin_address"`
	OriginPostalCode        int         `json:"origin_postal_code"`
	DestinationContactName  string      `json:"destination_contact_name"`
	DestinationContactPhone string      `json:"destination_contact_phone"`
	DestinationContactEmail string      `json:"destination_contact_email,omitempty"`
	DestinationAddress      string      `json:"destination_address"`
	DestinationPostalCode   int         `json:"destination_postal_code"`
	CourierCompany          string      `json:"courier_company"`
	CourierType             string      `json:"courier_type"`
	DeliveryType            string      `json:"delivery_type"`
	ReferenceID             string      `json:"reference_id"`
	Items                   []orderItem `json:"items"`
}

type orderItem struct {
	Name     string      `json:"name"`
	Value    json.Number `json:"value"`
	Quantity int         `json:"quantity"`
	Weight   int         `json:"weight"`
}

type orderResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Price   decimal.Decimal `json:"price"`
	Courier struct {
		TrackingID string `json:"tracking_id"`
		WaybillID  string `json:"waybill_id"`
		Company    string `json:"company"`
		Type       string `json:"type"`
	} `json:"courier"`
}

type trackingResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	WaybillID string `json:"waybill_id"`
	Status    string `json:"status"`
	Link      string `json:"link"`
	History   []struct {
		Note      string    `json:"note"`
		Status    string    `json:"status"`
		UpdatedAt time.Time `json:"updated_at"`
	} `json:"history"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
}
