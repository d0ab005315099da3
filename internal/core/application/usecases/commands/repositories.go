// Package commands contains the operations that change order, payment and
// shipment state: the two notification reconcilers, the operator transitions
// and the tracking refresh.
// All commands follow a consistent pattern: validation, per-order locking,
// transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// ShipmentRepoFactory provides access to shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// PaymentUoW spans an order and its payment.
	// Used by payment reconciliation and by process.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// ShipmentUoW spans an order and its shipment.
	// Used by shipment reconciliation and the tracking refresh.
	ShipmentUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// UoW spans the whole order aggregate: order, payment and shipment.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   p, err := uow.PaymentRepository().GetByOrderID(ctx, orderID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		ShipmentRepoFactory
	}

	// UoWFactory creates new unit of work instances for whole-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current time. Handlers take one so tests can pin timestamps.
type Clock func() time.Time
