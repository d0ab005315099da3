package commands

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrReconcileShipmentCommandIsNotConstructed = errors.New(
	"ReconcileShipmentCommand must be created via NewReconcileShipmentCommand constructor",
)

// CarrierReport holds the optional parts of a carrier status report.
type CarrierReport struct {
	Waybill        string
	TrackingID     string
	CourierCompany string
	CourierType    string
	Note           string
	OccurredAt     time.Time
}

// ReconcileShipmentCommand carries one carrier status report, either from a
// webhook or from polling the carrier.
type ReconcileShipmentCommand struct {
	carrierOrderID string
	carrierStatus  string
	report         CarrierReport

	guard guard.ConstructorGuard
}

func NewReconcileShipmentCommand(carrierOrderID, carrierStatus string, report CarrierReport) (ReconcileShipmentCommand, error) {
	carrierOrderID = strings.TrimSpace(carrierOrderID)
	if carrierOrderID == "" {
		return ReconcileShipmentCommand{}, errs.NewValueIsRequiredError("carrier order id")
	}

	return ReconcileShipmentCommand{
		carrierOrderID: carrierOrderID,
		carrierStatus:  carrierStatus,
		report:         report,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileShipmentCommand) CarrierOrderID() string { return c.carrierOrderID }
func (c ReconcileShipmentCommand) CarrierStatus() string { return c.carrierStatus }
func (c ReconcileShipmentCommand) Report() CarrierReport { return c.report }

func (c ReconcileShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReconcileShipmentCommandIsNotConstructed)
}
