package services

import (
	"strings"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/shipment"
)

// StatusMapper is a stateless domain service that reads provider statuses.
//
// Both mappings are total: every input, including values the providers may
// add in the future, yields a defined result. Unknown values fall back to the
// "still waiting" statuses so that they can never advance or fail an order.
//
// Example usage:
//
//	mapper := services.NewStatusMapper()
//	orderStatus, paymentStatus := mapper.MapPaymentStatus("capture", "accept")
//	// orderStatus == order.Success, paymentStatus == payment.Paid
type StatusMapper struct{}

// NewStatusMapper creates a new StatusMapper instance.
func NewStatusMapper() StatusMapper {
	return StatusMapper{}
}

// MapPaymentStatus derives the order and payment statuses implied by a
// payment gateway notification.
//
// Parameters:
//   - transactionStatus: gateway transaction status, e.g. "settlement"
//   - fraudStatus: gateway fraud verdict, only meaningful for "capture"
//
// Returns:
//   - order.Status: Success, Failed or Pending
//   - payment.Status: Paid, Failed or Unpaid
func (StatusMapper) MapPaymentStatus(transactionStatus, fraudStatus string) (order.Status, payment.Status) {
	switch normalize(transactionStatus) {
	case "capture":
		if normalize(fraudStatus) == "accept" {
			return order.Success, payment.Paid
		}
		return order.Pending, payment.Unpaid
	case "settlement":
		return order.Success, payment.Paid
	case "cancel", "deny", "expire":
		return order.Failed, payment.Failed
	default:
		return order.Pending, payment.Unpaid
	}
}

var carrierStatuses = map[string]struct {
	shipment shipment.Status
	order    order.Status
}{
	"pending":      {shipment.Pending, order.Unknown},
	"confirmed":    {shipment.Confirmed, order.Shipped},
	"allocated":    {shipment.Allocated, order.Shipped},
	"picking_up":   {shipment.PickingUp, order.Shipped},
	"picked_up":    {shipment.PickedUp, order.Shipped},
	"dropping_off": {shipment.DroppingOff, order.Shipped},
	"delivered":    {shipment.Delivered, order.Success},
	"on_hold":      {shipment.OnHold, order.Unknown},
	"cancelled":    {shipment.Cancelled, order.Failed},
	"returned":     {shipment.Returned, order.Failed},
}

// MapShipmentStatus derives the shipment status and, when the carrier status
// implies one, the order status.
//
// Returns:
//   - shipment.Status: the matching status, Pending for unrecognized input
//   - order.Status: the implied order status, meaningful only when ok is true
//   - ok: false for "pending", "on_hold" and unrecognized input, which must
//     leave the order untouched
func (StatusMapper) MapShipmentStatus(carrierStatus string) (shipment.Status, order.Status, bool) {
	mapped, found := carrierStatuses[normalize(carrierStatus)]
	if !found {
		return shipment.Pending, order.Unknown, false
	}
	return mapped.shipment, mapped.order, mapped.order != order.Unknown
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
