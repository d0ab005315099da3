package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentTrackingQueryHandler resolves the waybill of an order locally and
// asks the carrier for its tracking. It reports, it never writes: status
// changes reach the order only through the shipment reconciler.
type GetShipmentTrackingQueryHandler struct {
	db      *gorm.DB
	carrier ports.CarrierClient
}

func NewGetShipmentTrackingQueryHandler(db *gorm.DB, carrier ports.CarrierClient) GetShipmentTrackingQueryHandler {
	return GetShipmentTrackingQueryHandler{db: db, carrier: carrier}
}

func (h GetShipmentTrackingQueryHandler) Handle(ctx context.Context, query GetShipmentTrackingQuery) (ShipmentTracking, error) {
	if err := query.Validate(); err != nil {
		return ShipmentTracking{}, err
	}

	var (
		userID                  uuid.UUID
		waybill, courierCompany sql.NullString
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT o.user_id, s.waybill, s.courier_company
		FROM orders o
		LEFT JOIN shipments s ON s.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row().Scan(&userID, &waybill, &courierCompany)
	if errors.Is(err, sql.ErrNoRows) {
		return ShipmentTracking{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return ShipmentTracking{}, err
	}

	if userID != query.CallerID().Bytes() {
		return ShipmentTracking{}, errs.NewForbiddenError("order", query.OrderID().String())
	}
	if waybill.String == "" {
		return ShipmentTracking{}, errs.NewObjectNotFoundError("shipment waybill", query.OrderID().String())
	}

	tracking, err := h.carrier.TrackShipment(ctx, waybill.String, courierCompany.String)
	if err != nil {
		return ShipmentTracking{}, errs.NewUpstreamError("carrier", err)
	}

	result := ShipmentTracking{
		Waybill:        waybill.String,
		CourierCompany: courierCompany.String,
		Status:         tracking.Status,
		Link:           tracking.Link,
		History:        make([]TrackingEntryView, 0, len(tracking.History)),
	}
	for _, entry := range tracking.History {
		result.History = append(result.History, TrackingEntryView{
			Status:    entry.Status,
			Note:      entry.Note,
			UpdatedAt: entry.UpdatedAt,
		})
	}
	return result, nil
}
