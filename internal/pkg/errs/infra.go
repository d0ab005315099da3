package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUpstream             = errors.New("upstream error")
	ErrTransient            = errors.New("transient error")
	ErrReconciliationNeeded = errors.New("reconciliation needed")
)

// UpstreamError wraps a failed call to an external provider.
type UpstreamError struct {
	Service string
	Cause   error
}

func NewUpstreamError(service string, cause error) *UpstreamError {
	return &UpstreamError{Service: service, Cause: cause}
}

func (e *UpstreamError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUpstream, e.Service), e.Cause)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.Cause}
}

// TransientError marks a retryable infrastructure failure.
type TransientError struct {
	Op    string
	Cause error
}

func NewTransientError(op string, cause error) *TransientError {
	return &TransientError{Op: op, Cause: cause}
}

func (e *TransientError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrTransient, e.Op), e.Cause)
}

func (e *TransientError) Unwrap() []error {
	return []error{ErrTransient, e.Cause}
}

// ReconciliationNeededError reports an external side effect that has no local record.
type ReconciliationNeededError struct {
	OrderID        string
	CarrierOrderID string
	Waybill        string
	Cause          error
}

func NewReconciliationNeededError(orderID, carrierOrderID, waybill string, cause error) *ReconciliationNeededError {
	return &ReconciliationNeededError{
		OrderID:        orderID,
		CarrierOrderID: carrierOrderID,
		Waybill:        waybill,
		Cause:          cause,
	}
}

func (e *ReconciliationNeededError) Error() string {
	msg := fmt.Sprintf("%s: order %s has carrier order %s (waybill %s) without a local shipment",
		ErrReconciliationNeeded, e.OrderID, e.CarrierOrderID, sanitize(e.Waybill))
	return withCause(msg, e.Cause)
}

func (e *ReconciliationNeededError) Unwrap() []error {
	return []error{ErrReconciliationNeeded, e.Cause}
}
