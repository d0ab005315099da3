package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipments and
// their tracking history.
type ShipmentRepository interface {
	// Add persists a new shipment. A second shipment for the same order or
	// the same carrier order fails with errs.ErrConflict.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists status, identifiers and newly appended tracking events.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error)

	// GetByCarrierOrderID resolves the shipment a carrier notification refers to.
	GetByCarrierOrderID(ctx context.Context, carrierOrderID string) (*shipment.Shipment, error)

	// ListTrackable returns up to limit shipments that have a waybill and have
	// not reached a final status. Shipments never polled come first, then the
	// least recently polled.
	ListTrackable(ctx context.Context, limit int) ([]*shipment.Shipment, error)

	// MarkPolled records a carrier poll attempt, successful or not, so the
	// next ListTrackable rotates to other shipments.
	MarkPolled(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
