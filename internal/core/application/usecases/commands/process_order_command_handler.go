package commands

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"go.uber.org/zap"
)

// ProcessOrderCommandHandler moves a paid Pending order to Processing.
// Preconditions are checked in order: ownership, payment, current status.
// Nothing is written unless all of them hold.
type ProcessOrderCommandHandler struct {
	uowFactory PaymentUoWFactory
	locker     ports.OrderLocker
	clock      Clock
	logger     *zap.Logger
}

func NewProcessOrderCommandHandler(
	uowFactory PaymentUoWFactory,
	locker ports.OrderLocker,
	clock Clock,
	logger *zap.Logger,
) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		clock:      clock,
		logger:     logger.With(zap.String("component", "order-lifecycle")),
	}
}

func (h ProcessOrderCommandHandler) Handle(ctx context.Context, command ProcessOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	orderID := command.OrderID()
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

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return transient("load order", err)
	}
	if !o.BelongsTo(command.CallerID()) {
		return errs.NewForbiddenError("order", orderID.String())
	}

	p, err := uow.PaymentRepository().GetByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return transient("load payment", err)
	}
	if p == nil || !p.IsPaid() {
		return errs.NewPreconditionFailedError("payment must be completed before processing")
	}

	if o.Status() != order.Pending {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("order status is %s, only PENDING orders can be processed", o.Status()))
	}
	if err = o.Process(h.clock()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return transient("update order", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return transient("commit", err)
	}

	h.logger.Info("order processed", zap.String("order_id", orderID.String()))
	return nil
}
