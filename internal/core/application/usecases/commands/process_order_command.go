package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrProcessOrderCommandIsNotConstructed = errors.New(
	"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
)

// ProcessOrderCommand marks a paid order as accepted for fulfilment on behalf
// of the authenticated caller.
type ProcessOrderCommand struct {
	orderID  kernel.UUID
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewProcessOrderCommand(orderID, callerID kernel.UUID) (ProcessOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ProcessOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := callerID.Validate(); err != nil {
		return ProcessOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("caller id", err)
	}

	return ProcessOrderCommand{
		orderID:  orderID,
		callerID: callerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ProcessOrderCommand) CallerID() kernel.UUID { return c.callerID }

func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}
