package payment

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status is the local payment state of an order.
//
//	Unpaid ──> Paid
//	   │
//	   └─────> Failed
//
// Paid and Failed are terminal: gateways replay and reorder notifications,
// and a settled payment must never be reported as unpaid again.
type Status int

const (
	Unknown Status = iota
	Unpaid
	Paid
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "UNKNOWN",
		Unpaid:  "UNPAID",
		Paid:    "PAID",
		Failed:  "FAILED",
	}
}

func (s Status) Validate() error {
	if s < Unpaid || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the payment can no longer change.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Failed
}

// CanTransitionTo reports whether a notification carrying next may be applied.
// Applying the current status again is allowed and changes nothing.
func (s Status) CanTransitionTo(next Status) bool {
	if next.Validate() != nil {
		return false
	}
	if s == next {
		return true
	}
	return s == Unpaid
}
