package commands

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrRefreshShipmentTrackingCommandIsNotConstructed = errors.New(
	"RefreshShipmentTrackingCommand must be created via NewRefreshShipmentTrackingCommand constructor",
)

// RefreshShipmentTrackingCommand polls the carrier for up to batchSize
// unfinished shipments.
type RefreshShipmentTrackingCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRefreshShipmentTrackingCommand(batchSize int) (RefreshShipmentTrackingCommand, error) {
	if batchSize <= 0 {
		return RefreshShipmentTrackingCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batch size", fmt.Errorf("%d is not greater than 0", batchSize))
	}
	return RefreshShipmentTrackingCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RefreshShipmentTrackingCommand) BatchSize() int { return c.batchSize }

func (c RefreshShipmentTrackingCommand) Validate() error {
	return c.guard.Validate(ErrRefreshShipmentTrackingCommandIsNotConstructed)
}

// RefreshShipmentTrackingResult counts what a refresh run did.
type RefreshShipmentTrackingResult struct {
	Checked int
	Applied int
	Failed  int
}
