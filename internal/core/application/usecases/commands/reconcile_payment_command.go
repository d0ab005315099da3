package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand carries one payment gateway notification.
// The order reference is kept as received: a reference that is not an order
// id can never match and is reported as not found by the handler.
//
// Example:
//
//	cmd, err := NewReconcilePaymentCommand(
//	    "0b4f9cbe-8d0c-4b43-9d4e-2f7fdc1c9a2e", "settlement", "", "bank_transfer",
//	    decimal.RequireFromString("168000.00"),
//	)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type ReconcilePaymentCommand struct {
	orderReference    string
	transactionStatus string
	fraudStatus       string
	paymentType       string
	grossAmount       decimal.Decimal

	guard guard.ConstructorGuard
}

// NewReconcilePaymentCommand validates the notification fields the handler relies on.
func NewReconcilePaymentCommand(
	orderReference, transactionStatus, fraudStatus, paymentType string,
	grossAmount decimal.Decimal,
) (ReconcilePaymentCommand, error) {
	orderReference = strings.TrimSpace(orderReference)
	if orderReference == "" {
		return ReconcilePaymentCommand{}, errs.NewValueIsRequiredError("order_id")
	}
	if grossAmount.IsNegative() {
		return ReconcilePaymentCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"gross_amount", fmt.Errorf("%s is negative", grossAmount))
	}

	return ReconcilePaymentCommand{
		orderReference:    orderReference,
		transactionStatus: transactionStatus,
		fraudStatus:       fraudStatus,
		paymentType:       paymentType,
		grossAmount:       grossAmount,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcilePaymentCommand) OrderReference() string { return c.orderReference }
func (c ReconcilePaymentCommand) TransactionStatus() string { return c.transactionStatus }
func (c ReconcilePaymentCommand) FraudStatus() string { return c.fraudStatus }
func (c ReconcilePaymentCommand) PaymentType() string { return c.paymentType }
func (c ReconcilePaymentCommand) GrossAmount() decimal.Decimal { return c.grossAmount }

// Validate ensures the command was created through the constructor.
func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}
