package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment is the local record of the gateway transaction of one order.
// There is at most one payment per order.
type Payment struct {
	id                kernel.UUID
	orderID           kernel.UUID
	method            string
	amount            decimal.Decimal
	status            Status
	transactionStatus string
	paidAt            *time.Time
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewPayment opens an Unpaid payment for an order at checkout.
func NewPayment(id, orderID kernel.UUID, method string, amount decimal.Decimal, now time.Time) (*Payment, error) {
	return RestorePayment(id, orderID, method, amount, Unpaid, "", nil, now, now)
}

// RestorePayment rebuilds a payment from persistence.
func RestorePayment(
	id, orderID kernel.UUID,
	method string,
	amount decimal.Decimal,
	status Status,
	transactionStatus string,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	var amountErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("payment amount", fmt.Errorf("%s is negative", amount))
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate(), amountErr); err != nil {
		return nil, err
	}

	return &Payment{
		id:                id,
		orderID:           orderID,
		method:            strings.TrimSpace(method),
		amount:            amount,
		status:            status,
		transactionStatus: transactionStatus,
		paidAt:            paidAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		isConstructed:     true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID { return p.id }
func (p *Payment) OrderID() kernel.UUID { return p.orderID }
func (p *Payment) Method() string { return p.method }
func (p *Payment) Amount() decimal.Decimal { return p.amount }
func (p *Payment) Status() Status { return p.status }
func (p *Payment) TransactionStatus() string { return p.transactionStatus }
func (p *Payment) PaidAt() *time.Time { return p.paidAt }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time { return p.updatedAt }

// IsPaid reports whether the gateway settled the payment.
func (p *Payment) IsPaid() bool {
	return p.status == Paid
}

// Notification is the part of a gateway notification a payment records.
// An empty method or a zero amount means "not reported".
type Notification struct {
	Status            Status
	TransactionStatus string
	Method            string
	Amount            decimal.Decimal
}

// ApplyNotification merges a gateway notification. It returns false when the
// notification conflicts with a terminal status and was ignored. paidAt is
// stamped only on the transition into Paid, so replays keep the first value.
func (p *Payment) ApplyNotification(n Notification, now time.Time) bool {
	if !p.status.CanTransitionTo(n.Status) {
		return false
	}

	changed := p.status != n.Status || p.transactionStatus != n.TransactionStatus
	if n.Status == Paid && p.status != Paid {
		paidAt := now
		p.paidAt = &paidAt
	}
	if method := strings.TrimSpace(n.Method); method != "" && method != p.method {
		p.method = method
		changed = true
	}
	if n.Amount.IsPositive() && !n.Amount.Equal(p.amount) {
		p.amount = n.Amount
		changed = true
	}

	p.status = n.Status
	p.transactionStatus = n.TransactionStatus
	if changed {
		p.updatedAt = now
	}
	return true
}
