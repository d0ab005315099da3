// Package queries contains the read side of the order lifecycle: order
// details for the owning customer and live carrier tracking.
// Queries read the database directly and never go through the aggregates.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery reads an order with its payment, item and shipment
// on behalf of the authenticated caller.
//
// Example:
//
//	query, err := NewGetOrderDetailsQuery(orderID, callerID)
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
type GetOrderDetailsQuery struct {
	orderID  kernel.UUID
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(orderID, callerID kernel.UUID) (GetOrderDetailsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := callerID.Validate(); err != nil {
		return GetOrderDetailsQuery{}, errs.NewValueIsRequiredErrorWithCause("caller id", err)
	}
	return GetOrderDetailsQuery{orderID: orderID, callerID: callerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailsQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderDetailsQuery) CallerID() kernel.UUID { return q.callerID }

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

// OrderDetails is the customer facing view of an order.
type OrderDetails struct {
	ID               kernel.UUID
	StoreID          kernel.UUID
	ProductID        kernel.UUID
	Status           string
	Item             ItemView
	ShippingRequired bool
	CourierCompany   string
	CourierType      string
	ShippingCost     decimal.Decimal
	Payment          *PaymentView
	Shipment         *ShipmentView
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ItemView struct {
	Name     string
	Value    decimal.Decimal
	Quantity int
	Weight   int
}

type PaymentView struct {
	Status            string
	TransactionStatus string
	Method            string
	Amount            decimal.Decimal
	PaidAt            *time.Time
}

type ShipmentView struct {
	ID             kernel.UUID
	CarrierOrderID string
	Waybill        string
	TrackingID     string
	CourierCompany string
	CourierType    string
	Status         string
	Price          decimal.Decimal
	History        []TrackingEventView
}

type TrackingEventView struct {
	Status     string
	Note       string
	OccurredAt time.Time
}
