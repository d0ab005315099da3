package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Processing ──> Shipped ──> Success
//	   │            │             │
//	   └────────────┴─────────────┴──────> Failed
//
// Success and Failed are terminal for notification-driven updates. The only
// operator transition out of Success is Ship: the payment gateway reports a
// settled order as Success before any shipment exists, and creating that
// shipment moves it to Shipped.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of a freshly checked-out order awaiting payment.
	Pending

	// Processing means an operator accepted a paid order for fulfilment.
	Processing

	// Shipped means a carrier shipment exists and is on its way.
	Shipped

	// Success means the order was settled (before shipment) or delivered.
	Success

	// Failed means payment failed or the shipment was cancelled or returned.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Processing: "PROCESSING",
		Shipped:    "SHIPPED",
		Success:    "SUCCESS",
		Failed:     "FAILED",
	}
}

// rank orders the forward path; Failed sits outside of it.
func (s Status) rank() int {
	switch s {
	case Pending:
		return 1
	case Processing:
		return 2
	case Shipped:
		return 3
	case Success:
		return 4
	default:
		return 0
	}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s < Pending || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether notifications can no longer move the status.
func (s Status) IsTerminal() bool {
	return s == Success || s == Failed
}

// Process transitions Pending to Processing.
func (s Status) Process() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to process", s),
		)
	}
	return Processing, nil
}

// Ship transitions a paid, not yet fulfilled order to Shipped.
func (s Status) Ship() (Status, error) {
	switch s {
	case Pending, Processing, Success:
		return Shipped, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to ship", s),
		)
	}
}

// ReconcilePayment merges a status derived from a payment notification.
// Payment notifications only decide the outcome of orders still waiting for
// payment; once an order left Pending, a replayed or reordered payment
// notification must not move it. Pending targets never change anything.
func (s Status) ReconcilePayment(target Status) (Status, bool) {
	if s != Pending {
		return s, false
	}
	if target != Success && target != Failed {
		return s, false
	}
	return target, true
}

// ReconcileShipment merges a status derived from a carrier notification.
// The order only moves forward along Pending → Processing → Shipped → Success,
// or to Failed from any non-terminal status.
func (s Status) ReconcileShipment(target Status) (Status, bool) {
	if s == target || s.IsTerminal() || target.Validate() != nil {
		return s, false
	}
	if target == Failed {
		return Failed, true
	}
	if target.rank() > s.rank() {
		return target, true
	}
	return s, false
}
