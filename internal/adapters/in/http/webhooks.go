package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/generated/servers"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxWebhookBody = 1 << 20

var (
	ackProcessed = servers.Acknowledgement{Status: "ok"}
	ackIgnored   = servers.Acknowledgement{Status: "ignored"}
)

// ReceivePaymentNotification handles POST /webhooks/payments.
func (s *Server) ReceivePaymentNotification(ctx echo.Context) error {
	var body servers.PaymentNotification
	if err := ctx.Bind(&body); err != nil {
		return s.rejectWebhook(ctx, metrics.SourcePayment, http.StatusBadRequest, "Invalid notification body")
	}
	if err := ctx.Validate(&body); err != nil {
		return s.rejectWebhook(ctx, metrics.SourcePayment, http.StatusBadRequest, err.Error())
	}

	if s.config.PaymentServerKey != "" {
		if body.SignatureKey == nil || !verifyPaymentSignature(
			body.OrderId, deref(body.StatusCode), body.GrossAmount, *body.SignatureKey, s.config.PaymentServerKey,
		) {
			return s.rejectWebhook(ctx, metrics.SourcePayment, http.StatusUnauthorized, "Invalid signature")
		}
	}

	grossAmount, err := decimal.NewFromString(body.GrossAmount)
	if err != nil {
		return s.rejectWebhook(ctx, metrics.SourcePayment, http.StatusBadRequest, "Invalid gross_amount")
	}

	cmd, err := commands.NewReconcilePaymentCommand(
		body.OrderId, body.TransactionStatus, deref(body.FraudStatus), deref(body.PaymentType), grossAmount,
	)
	if err != nil {
		return s.rejectWebhook(ctx, metrics.SourcePayment, http.StatusBadRequest, err.Error())
	}

	reqCtx, cancel := s.webhookContext(ctx.Request().Context())
	defer cancel()

	return s.acknowledge(ctx, metrics.SourcePayment, s.handlers.PaymentReconciler.Handle(reqCtx, cmd),
		zap.String("order_id", body.OrderId),
		zap.String("transaction_status", body.TransactionStatus),
	)
}

// ReceiveShipmentNotification handles POST /webhooks/shipments.
// The carrier pings the endpoint with an empty body when the webhook is
// installed; that request is acknowledged without further checks.
func (s *Server) ReceiveShipmentNotification(
	ctx echo.Context,
	params servers.ReceiveShipmentNotificationParams,
) error {
	raw, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookBody))
	if err != nil {
		return s.rejectWebhook(ctx, metrics.SourceCarrier, http.StatusBadRequest, "Unreadable notification body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ctx.JSON(http.StatusOK, ackProcessed)
	}

	if s.config.CarrierWebhookSecret != "" {
		if params.XCarrierSignature == nil ||
			!verifyCarrierSignature(raw, *params.XCarrierSignature, s.config.CarrierWebhookSecret) {
			return s.rejectWebhook(ctx, metrics.SourceCarrier, http.StatusUnauthorized, "Invalid signature")
		}
	}

	var body servers.ShipmentNotification
	if err = json.Unmarshal(raw, &body); err != nil {
		return s.rejectWebhook(ctx, metrics.SourceCarrier, http.StatusBadRequest, "Invalid notification body")
	}
	if err = ctx.Validate(&body); err != nil {
		return s.rejectWebhook(ctx, metrics.SourceCarrier, http.StatusBadRequest, err.Error())
	}

	report := commands.CarrierReport{
		Waybill:        deref(body.WaybillId),
		TrackingID:     deref(body.CourierTrackingId),
		CourierCompany: deref(body.CourierCompany),
		CourierType:    deref(body.CourierType),
		Note:           deref(body.Note),
	}
	if body.UpdatedAt != nil {
		report.OccurredAt = *body.UpdatedAt
	}

	cmd, err := commands.NewReconcileShipmentCommand(body.OrderId, deref(body.Status), report)
	if err != nil {
		return s.rejectWebhook(ctx, metrics.SourceCarrier, http.StatusBadRequest, err.Error())
	}

	reqCtx, cancel := s.webhookContext(ctx.Request().Context())
	defer cancel()

	return s.acknowledge(ctx, metrics.SourceCarrier, s.handlers.ShipmentReconciler.Handle(reqCtx, cmd),
		zap.String("carrier_order_id", body.OrderId),
		zap.String("carrier_status", deref(body.Status)),
	)
}

// acknowledge turns a reconciler result into the provider facing answer.
// Only failures worth redelivering get a 5xx.
func (s *Server) acknowledge(ctx echo.Context, source string, err error, fields ...zap.Field) error {
	log := s.logger.With(append(fields, zap.String("source", source))...)

	switch {
	case err == nil:
		s.metrics.ObserveWebhook(source, metrics.OutcomeProcessed)
		return ctx.JSON(http.StatusOK, ackProcessed)

	case errors.Is(err, errs.ErrObjectNotFound):
		log.Warn("notification does not match a local record", zap.Error(err))
		s.metrics.ObserveWebhook(source, metrics.OutcomeUnmatched)
		return ctx.JSON(http.StatusOK, ackIgnored)

	case errs.IsValidation(err):
		log.Warn("notification rejected", zap.Error(err))
		return s.rejectWebhook(ctx, source, http.StatusBadRequest, err.Error())

	case isTransient(err):
		log.Warn("notification not applied, asking for redelivery", zap.Error(err))
		s.metrics.ObserveWebhook(source, metrics.OutcomeTransient)
		return ctx.JSON(http.StatusServiceUnavailable, servers.Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Temporarily unavailable, retry later",
		})

	default:
		log.Error("notification failed", zap.Error(err))
		s.metrics.ObserveWebhook(source, metrics.OutcomeTransient)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}

func (s *Server) rejectWebhook(ctx echo.Context, source string, status int, message string) error {
	s.metrics.ObserveWebhook(source, metrics.OutcomeRejected)
	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: message,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
