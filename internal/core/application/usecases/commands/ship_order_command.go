package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrShipOrderCommandIsNotConstructed = errors.New(
	"ShipOrderCommand must be created via NewShipOrderCommand constructor",
)

// ShipOrderCommand books the carrier shipment of a paid order of a store.
type ShipOrderCommand struct {
	storeID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewShipOrderCommand(storeID, orderID kernel.UUID) (ShipOrderCommand, error) {
	if err := storeID.Validate(); err != nil {
		return ShipOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("store id", err)
	}
	if err := orderID.Validate(); err != nil {
		return ShipOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}

	return ShipOrderCommand{
		storeID: storeID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ShipOrderCommand) StoreID() kernel.UUID { return c.storeID }
func (c ShipOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// ShipOrderResult describes the shipment that was booked.
type ShipOrderResult struct {
	ShipmentID     kernel.UUID
	OrderID        kernel.UUID
	CarrierOrderID string
	Waybill        string
	TrackingID     string
	CourierCompany string
	CourierType    string
	Status         string
	Price          decimal.Decimal
}
