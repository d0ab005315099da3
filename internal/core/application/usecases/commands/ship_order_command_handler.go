package commands

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/shipment"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"go.uber.org/zap"
)

const carrierService = "carrier"

// ShipOrderCommandHandler books a carrier shipment for a paid order.
//
// Shipping is deliberately not idempotent by replay: booking twice would
// create two carrier orders, so a second call for the same order fails with
// errs.ErrConflict. Every precondition is checked before the carrier is
// called, and the local shipment is only written after the carrier accepted
// the booking. The order row stays locked while the carrier is called.
//
// Errors:
//   - errs.ErrObjectNotFound: unknown store, or the order is not in this store
//   - errs.ErrPreconditionFailed: no active provider, unpaid, no shipping, wrong status
//   - errs.ErrConflict: a shipment already exists
//   - errs.ErrUpstream: the carrier rejected or failed the booking, nothing was written
//   - errs.ErrReconciliationNeeded: the carrier booked the shipment but it could not be recorded
type ShipOrderCommandHandler struct {
	uowFactory UoWFactory
	stores     ports.StoreRepository
	carrier    ports.CarrierClient
	locker     ports.OrderLocker
	clock      Clock
	logger     *zap.Logger
}

func NewShipOrderCommandHandler(
	uowFactory UoWFactory,
	stores ports.StoreRepository,
	carrier ports.CarrierClient,
	locker ports.OrderLocker,
	clock Clock,
	logger *zap.Logger,
) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		uowFactory: uowFactory,
		stores:     stores,
		carrier:    carrier,
		locker:     locker,
		clock:      clock,
		logger:     logger.With(zap.String("component", "order-lifecycle")),
	}
}

func (h ShipOrderCommandHandler) Handle(ctx context.Context, command ShipOrderCommand) (ShipOrderResult, error) {
	if err := command.Validate(); err != nil {
		return ShipOrderResult{}, err
	}

	cfg, err := h.stores.GetShippingConfig(ctx, command.StoreID())
	if err != nil {
		return ShipOrderResult{}, err
	}
	if err = cfg.CanShip(); err != nil {
		return ShipOrderResult{}, err
	}

	orderID := command.OrderID()
	unlock, err := h.locker.Lock(ctx, orderID)
	if err != nil {
		return ShipOrderResult{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ShipOrderResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	shipmentRepo := uow.ShipmentRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return ShipOrderResult{}, err
	}
	if err = h.checkPreconditions(ctx, uow, command.StoreID(), o); err != nil {
		return ShipOrderResult{}, err
	}

	booked, err := h.carrier.CreateOrder(ctx, shipmentRequest(cfg, o))
	if err != nil {
		return ShipOrderResult{}, errs.NewUpstreamError(carrierService, err)
	}

	log := h.logger.With(
		zap.String("order_id", orderID.String()),
		zap.String("carrier_order_id", booked.ID),
		zap.String("waybill", booked.Waybill),
	)

	now := h.clock()
	sh, err := shipment.NewShipment(kernel.NewUUID(), orderID, shipment.CarrierOrder{
		CarrierOrderID: booked.ID,
		Waybill:        booked.Waybill,
		TrackingID:     booked.TrackingID,
		CourierCompany: o.Shipping().CourierCompany(),
		CourierType:    o.Shipping().CourierType(),
		Price:          booked.Price,
	}, o.Shipping().Recipient(), now)
	if err == nil {
		err = shipmentRepo.Add(ctx, sh)
	}
	if err == nil {
		err = o.Ship(now)
	}
	if err == nil {
		err = orderRepo.Update(ctx, o)
	}
	if err == nil {
		err = uow.Commit(ctx)
	}
	if err != nil {
		log.Error("carrier shipment created without local record", zap.Error(err))
		return ShipOrderResult{}, errs.NewReconciliationNeededError(orderID.String(), booked.ID, booked.Waybill, err)
	}

	log.Info("order shipped")
	return ShipOrderResult{
		ShipmentID:     sh.ID(),
		OrderID:        orderID,
		CarrierOrderID: sh.CarrierOrderID(),
		Waybill:        sh.Waybill(),
		TrackingID:     sh.TrackingID(),
		CourierCompany: sh.CourierCompany(),
		CourierType:    sh.CourierType(),
		Status:         sh.Status().String(),
		Price:          sh.Price(),
	}, nil
}

func (h ShipOrderCommandHandler) checkPreconditions(ctx context.Context, uow UoW, storeID kernel.UUID, o *order.Order) error {
	if !o.StoreID().IsEqual(storeID) {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}

	p, err := uow.PaymentRepository().GetByOrderID(ctx, o.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if p == nil || !p.IsPaid() {
		return errs.NewPreconditionFailedError("payment must be completed before shipping")
	}

	if !o.Shipping().Required() {
		return errs.NewPreconditionFailedError("order does not require shipping")
	}

	_, err = uow.ShipmentRepository().GetByOrderID(ctx, o.ID())
	switch {
	case err == nil:
		return errs.NewConflictError("shipment", o.ID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if _, err = o.Status().Ship(); err != nil {
		return errs.NewPreconditionFailedErrorWithCause(
			fmt.Sprintf("order status is %s, it cannot be shipped", o.Status()), err)
	}
	return nil
}

func shipmentRequest(cfg *store.ShippingConfig, o *order.Order) ports.ShipmentRequest {
	shipper := cfg.Shipper()
	origin := cfg.Origin()
	recipient := o.Shipping().Recipient()
	item := o.Item()

	return ports.ShipmentRequest{
		ReferenceID: o.ID().String(),
		Shipper: ports.ShipmentParty{
			ContactName:  shipper.Contact.Name(),
			ContactPhone: shipper.Contact.Phone(),
			ContactEmail: shipper.Contact.Email(),
			Organisation: shipper.Organisation,
		},
		Origin: ports.ShipmentParty{
			ContactName:  origin.Name(),
			ContactPhone: origin.Phone(),
			Address:      origin.Address(),
			PostalCode:   origin.PostalCode(),
		},
		Destination: ports.ShipmentParty{
			ContactName:  recipient.Name(),
			ContactPhone: recipient.Phone(),
			ContactEmail: recipient.Email(),
			Address:      recipient.Address(),
			PostalCode:   recipient.PostalCode(),
		},
		CourierCompany: o.Shipping().CourierCompany(),
		CourierType:    o.Shipping().CourierType(),
		Items: []ports.ShipmentItem{{
			Name:     item.Name(),
			Value:    item.Value(),
			Quantity: item.Quantity(),
			Weight:   item.Weight(),
		}},
	}
}
