package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentParty is a sender or receiver on a carrier manifest.
type ShipmentParty struct {
	ContactName  string
	ContactPhone string
	ContactEmail string
	Organisation string
	Address      string
	PostalCode   string
}

// ShipmentItem is a line of the carrier manifest.
type ShipmentItem struct {
	Name     string
	Value    decimal.Decimal
	Quantity int
	Weight   int
}

// ShipmentRequest is everything a carrier needs to book a pickup.
type ShipmentRequest struct {
	ReferenceID    string
	Shipper        ShipmentParty
	Origin         ShipmentParty
	Destination    ShipmentParty
	CourierCompany string
	CourierType    string
	Items          []ShipmentItem
}

// CarrierOrder is the carrier's answer to a booking.
type CarrierOrder struct {
	ID         string
	Waybill    string
	TrackingID string
	Status     string
	Price      decimal.Decimal
}

// TrackingEntry is one line of the carrier's tracking history.
type TrackingEntry struct {
	Status    string
	Note      string
	UpdatedAt time.Time
}

// Tracking is the carrier's live view of a waybill.
type Tracking struct {
	Status  string
	History []TrackingEntry
	Link    string
}

// CarrierClient books and tracks shipments at the shipping provider.
// Both calls block on the network and may fail; errors are returned as-is
// and classified by the caller.
type CarrierClient interface {
	CreateOrder(ctx context.Context, request ShipmentRequest) (CarrierOrder, error)
	TrackShipment(ctx context.Context, waybill, courierCompany string) (Tracking, error)
}
