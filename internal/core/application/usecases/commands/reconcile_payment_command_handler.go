package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"go.uber.org/zap"
)

// ReconcilePaymentCommandHandler applies payment gateway notifications.
//
// The payment and order statuses are derived from the notification alone, so
// replays and reordered deliveries converge on the same state. The order row
// is locked for the whole read-modify-write, which keeps a racing shipment
// notification from overwriting the result with a stale status.
//
// Errors:
//   - errs.ErrObjectNotFound: the reference does not resolve to an order
//   - errs.ErrTransient: storage or locking failed, the gateway should redeliver
type ReconcilePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	locker     ports.OrderLocker
	mapper     services.StatusMapper
	clock      Clock
	logger     *zap.Logger
}

func NewReconcilePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	locker ports.OrderLocker,
	clock Clock,
	logger *zap.Logger,
) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		mapper:     services.NewStatusMapper(),
		clock:      clock,
		logger:     logger.With(zap.String("component", "payment-reconciler")),
	}
}

func (h ReconcilePaymentCommandHandler) Handle(ctx context.Context, command ReconcilePaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(command.OrderReference())
	if err != nil {
		return errs.NewObjectNotFoundErrorWithCause("order", command.OrderReference(), err)
	}

	orderStatus, paymentStatus := h.mapper.MapPaymentStatus(command.TransactionStatus(), command.FraudStatus())
	log := h.logger.With(
		zap.String("order_id", orderID.String()),
		zap.String("transaction_status", command.TransactionStatus()),
		zap.String("fraud_status", command.FraudStatus()),
	)

	unlock, err := lockOrder(ctx, h.locker, orderID)
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return transient("begin transaction", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	paymentRepo := uow.PaymentRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return transient("load order", err)
	}

	now := h.clock()
	notification := payment.Notification{
		Status:            paymentStatus,
		TransactionStatus: command.TransactionStatus(),
		Method:            command.PaymentType(),
		Amount:            command.GrossAmount(),
	}

	p, err := paymentRepo.GetByOrderID(ctx, orderID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		p, err = payment.NewPayment(kernel.NewUUID(), orderID, command.PaymentType(), command.GrossAmount(), now)
		if err != nil {
			return err
		}
		p.ApplyNotification(notification, now)
		if err = paymentRepo.Add(ctx, p); err != nil {
			return transient("add payment", err)
		}
	case err != nil:
		return transient("load payment", err)
	default:
		if !p.ApplyNotification(notification, now) {
			log.Info("ignoring payment notification for settled payment",
				zap.Stringer("payment_status", p.Status()),
				zap.Stringer("notified_status", paymentStatus),
			)
			return nil
		}
		if err = paymentRepo.Update(ctx, p); err != nil {
			return transient("update payment", err)
		}
	}

	previous := o.Status()
	if o.ApplyPaymentOutcome(orderStatus, now) {
		if err = orderRepo.Update(ctx, o); err != nil {
			return transient("update order", err)
		}
		log.Info("order status reconciled from payment",
			zap.Stringer("from", previous),
			zap.Stringer("to", o.Status()),
		)
	}

	if err = uow.Commit(ctx); err != nil {
		return transient("commit", err)
	}

	return nil
}
