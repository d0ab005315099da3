package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/shipment"
	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

// ShipmentReconciler applies a carrier status report.
type ShipmentReconciler interface {
	Handle(ctx context.Context, command ReconcileShipmentCommand) error
}

// RefreshShipmentTrackingCommandHandler recovers from lost carrier webhooks by
// polling the carrier for unfinished shipments and feeding every answer
// through the shipment reconciler, so polled and pushed reports follow the
// same rules. A failing shipment is logged and skipped. Every listed shipment
// is stamped as polled before the carrier is called, so a batch rotates
// through all trackable shipments across runs.
type RefreshShipmentTrackingCommandHandler struct {
	uowFactory ShipmentUoWFactory
	carrier    ports.CarrierClient
	reconciler ShipmentReconciler
	clock      Clock
	logger     *zap.Logger
}

func NewRefreshShipmentTrackingCommandHandler(
	uowFactory ShipmentUoWFactory,
	carrier ports.CarrierClient,
	reconciler ShipmentReconciler,
	clock Clock,
	logger *zap.Logger,
) RefreshShipmentTrackingCommandHandler {
	return RefreshShipmentTrackingCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		reconciler: reconciler,
		clock:      clock,
		logger:     logger.With(zap.String("component", "tracking-refresh")),
	}
}

func (h RefreshShipmentTrackingCommandHandler) Handle(
	ctx context.Context,
	command RefreshShipmentTrackingCommand,
) (RefreshShipmentTrackingResult, error) {
	var result RefreshShipmentTrackingResult
	if err := command.Validate(); err != nil {
		return result, err
	}

	repo := h.uowFactory.Create().ShipmentRepository()
	shipments, err := repo.ListTrackable(ctx, command.BatchSize())
	if err != nil {
		return result, err
	}

	ids := make([]kernel.UUID, 0, len(shipments))
	for _, sh := range shipments {
		ids = append(ids, sh.ID())
	}
	if err = repo.MarkPolled(ctx, ids, h.clock()); err != nil {
		return result, err
	}

	for _, sh := range shipments {
		if err = ctx.Err(); err != nil {
			return result, err
		}
		result.Checked++

		if err = h.refresh(ctx, sh); err != nil {
			result.Failed++
			h.logger.Warn("tracking refresh failed",
				zap.String("carrier_order_id", sh.CarrierOrderID()),
				zap.String("waybill", sh.Waybill()),
				zap.Error(err),
			)
			continue
		}
		result.Applied++
	}

	return result, nil
}

func (h RefreshShipmentTrackingCommandHandler) refresh(ctx context.Context, sh *shipment.Shipment) error {
	tracking, err := h.carrier.TrackShipment(ctx, sh.Waybill(), sh.CourierCompany())
	if err != nil {
		return err
	}

	report := CarrierReport{Waybill: sh.Waybill()}
	if n := len(tracking.History); n > 0 {
		latest := tracking.History[n-1]
		report.Note = latest.Note
		report.OccurredAt = latest.UpdatedAt
	}

	command, err := NewReconcileShipmentCommand(sh.CarrierOrderID(), tracking.Status, report)
	if err != nil {
		return err
	}
	return h.reconciler.Handle(ctx, command)
}
