package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payments.
// An order has at most one payment.
type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error
	Update(ctx context.Context, aggregate *payment.Payment) error

	// GetByOrderID returns errs.ErrObjectNotFound when the order has no payment yet.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
