package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetShipmentTrackingQueryIsNotConstructed = errors.New(
	"GetShipmentTrackingQuery must be created via NewGetShipmentTrackingQuery constructor",
)

// GetShipmentTrackingQuery asks the carrier for the live status of an order's shipment.
type GetShipmentTrackingQuery struct {
	orderID  kernel.UUID
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentTrackingQuery(orderID, callerID kernel.UUID) (GetShipmentTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetShipmentTrackingQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := callerID.Validate(); err != nil {
		return GetShipmentTrackingQuery{}, errs.NewValueIsRequiredErrorWithCause("caller id", err)
	}
	return GetShipmentTrackingQuery{orderID: orderID, callerID: callerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentTrackingQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetShipmentTrackingQuery) CallerID() kernel.UUID { return q.callerID }

func (q GetShipmentTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentTrackingQueryIsNotConstructed)
}

// ShipmentTracking is the carrier's live view of a shipment.
type ShipmentTracking struct {
	Waybill        string
	CourierCompany string
	Status         string
	Link           string
	History        []TrackingEntryView
}

type TrackingEntryView struct {
	Status    string
	Note      string
	UpdatedAt time.Time
}
