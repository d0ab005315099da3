package shipment

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status mirrors the carrier's shipment vocabulary.
type Status int

const (
	Unknown Status = iota
	Pending
	Confirmed
	Allocated
	PickingUp
	PickedUp
	DroppingOff
	Delivered
	OnHold
	Cancelled
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "UNKNOWN",
		Pending:     "PENDING",
		Confirmed:   "CONFIRMED",
		Allocated:   "ALLOCATED",
		PickingUp:   "PICKING_UP",
		PickedUp:    "PICKED_UP",
		DroppingOff: "DROPPING_OFF",
		Delivered:   "DELIVERED",
		OnHold:      "ON_HOLD",
		Cancelled:   "CANCELLED",
		Returned:    "RETURNED",
	}
}

// ParseStatus resolves the stored name of a status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Returned {
		return errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the parcel journey is over for good.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Returned
}

// CanTransitionTo reports whether a carrier update to next may be applied.
//
// Carriers deliver updates out of order, so in-transit statuses may follow
// each other freely. Three moves are refused: leaving Cancelled or Returned,
// leaving Delivered for anything but Returned, and falling back to Pending
// once the carrier reported progress.
func (s Status) CanTransitionTo(next Status) bool {
	if next.Validate() != nil {
		return false
	}
	switch {
	case s == next:
		return true
	case s.IsTerminal():
		return false
	case s == Delivered:
		return next == Returned
	case next == Pending:
		return s == Pending
	default:
		return true
	}
}
