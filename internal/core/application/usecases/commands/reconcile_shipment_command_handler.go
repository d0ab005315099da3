package commands

import (
	"context"

	"storefront/internal/core/domain/model/shipment"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

// ReconcileShipmentCommandHandler applies carrier status reports.
//
// The shipment status always follows the report (within the moves the
// shipment allows). Newly reported identifiers are saved even when the status
// move is refused. The order status changes only when the carrier status
// implies one: "on_hold", "pending" and unrecognized statuses leave the order
// exactly where it is, so a late or unknown report never regresses it.
//
// Errors:
//   - errs.ErrObjectNotFound: no local shipment has this carrier order id
//   - errs.ErrTransient: storage or locking failed, the carrier should redeliver
type ReconcileShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	locker     ports.OrderLocker
	mapper     services.StatusMapper
	clock      Clock
	logger     *zap.Logger
}

func NewReconcileShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	locker ports.OrderLocker,
	clock Clock,
	logger *zap.Logger,
) ReconcileShipmentCommandHandler {
	return ReconcileShipmentCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		mapper:     services.NewStatusMapper(),
		clock:      clock,
		logger:     logger.With(zap.String("component", "shipment-reconciler")),
	}
}

func (h ReconcileShipmentCommandHandler) Handle(ctx context.Context, command ReconcileShipmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	shipmentStatus, orderStatus, impliesOrder := h.mapper.MapShipmentStatus(command.CarrierStatus())
	log := h.logger.With(
		zap.String("carrier_order_id", command.CarrierOrderID()),
		zap.String("carrier_status", command.CarrierStatus()),
	)

	uow := h.uowFactory.Create()

	// Resolve the owning order outside of the transaction: the order lock
	// must be taken before the row lock.
	located, err := uow.ShipmentRepository().GetByCarrierOrderID(ctx, command.CarrierOrderID())
	if err != nil {
		return transient("find shipment", err)
	}
	orderID := located.OrderID()

	unlock, err := lockOrder(ctx, h.locker, orderID)
	if err != nil {
		return err
	}
	defer unlock()

	if err = uow.Begin(ctx); err != nil {
		return transient("begin transaction", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	shipmentRepo := uow.ShipmentRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return transient("load order", err)
	}
	sh, err := shipmentRepo.GetByCarrierOrderID(ctx, command.CarrierOrderID())
	if err != nil {
		return transient("load shipment", err)
	}

	now := h.clock()
	report := command.Report()
	accepted, changed := sh.ApplyCarrierUpdate(shipment.CarrierUpdate{
		Status:         shipmentStatus,
		Waybill:        report.Waybill,
		TrackingID:     report.TrackingID,
		CourierCompany: report.CourierCompany,
		CourierType:    report.CourierType,
		Note:           report.Note,
		OccurredAt:     report.OccurredAt,
	}, now)
	if !accepted {
		log.Info("carrier status refused for shipment",
			zap.Stringer("shipment_status", sh.Status()),
			zap.Stringer("reported_status", shipmentStatus),
			zap.Bool("identifiers_updated", changed),
		)
		if !changed {
			return nil
		}
	}

	if err = shipmentRepo.Update(ctx, sh); err != nil {
		return transient("update shipment", err)
	}

	previous := o.Status()
	if accepted && impliesOrder && o.ApplyShipmentOutcome(orderStatus, now) {
		if err = orderRepo.Update(ctx, o); err != nil {
			return transient("update order", err)
		}
		log.Info("order status reconciled from shipment",
			zap.String("order_id", orderID.String()),
			zap.Stringer("from", previous),
			zap.Stringer("to", o.Status()),
		)
	}

	if err = uow.Commit(ctx); err != nil {
		return transient("commit", err)
	}

	return nil
}
