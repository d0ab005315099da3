package order

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details groups the checkout-time attributes of an order. Checkout is an
// external collaborator; this core only reads these values.
type Details struct {
	StoreID   kernel.UUID
	UserID    kernel.UUID
	ProductID kernel.UUID
	Item      Item
	Shipping  Shipping
}

// Order is the aggregate root of a single purchase. Its status is mutated only
// by the lifecycle controller and the payment and shipment reconcilers.
//
// Order follows these invariants:
//   - Must have valid store, user and product references
//   - Status transitions follow the rules on Status
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id        kernel.UUID
	storeID   kernel.UUID
	userID    kernel.UUID
	productID kernel.UUID
	item      Item
	shipping  Shipping
	status    Status
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a Pending order, as checkout does once a cart is paid for.
func NewOrder(id kernel.UUID, details Details, now time.Time) (*Order, error) {
	return build(id, details, Pending, now, now)
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(id kernel.UUID, details Details, status Status, createdAt, updatedAt time.Time) (*Order, error) {
	return build(id, details, status, createdAt, updatedAt)
}

func build(id kernel.UUID, details Details, status Status, createdAt, updatedAt time.Time) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		referenceIsValid("store id", details.StoreID),
		referenceIsValid("user id", details.UserID),
		referenceIsValid("product id", details.ProductID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		storeID:       details.StoreID,
		userID:        details.UserID,
		productID:     details.ProductID,
		item:          details.Item,
		shipping:      details.Shipping,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func referenceIsValid(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) StoreID() kernel.UUID { return o.storeID }
func (o *Order) UserID() kernel.UUID { return o.userID }
func (o *Order) ProductID() kernel.UUID { return o.productID }
func (o *Order) Item() Item { return o.item }
func (o *Order) Shipping() Shipping { return o.shipping }
func (o *Order) Status() Status { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// BelongsTo reports whether the order was purchased by userID.
func (o *Order) BelongsTo(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// Process moves a Pending order to Processing.
func (o *Order) Process(now time.Time) error {
	newStatus, err := o.status.Process()
	if err != nil {
		return err
	}

	o.setStatus(newStatus, now)
	return nil
}

// Ship moves a paid order to Shipped after its carrier shipment was created.
func (o *Order) Ship(now time.Time) error {
	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.setStatus(newStatus, now)
	return nil
}

// ApplyPaymentOutcome merges the order status implied by a payment
// notification and reports whether the order changed.
func (o *Order) ApplyPaymentOutcome(target Status, now time.Time) bool {
	newStatus, changed := o.status.ReconcilePayment(target)
	if changed {
		o.setStatus(newStatus, now)
	}
	return changed
}

// ApplyShipmentOutcome merges the order status implied by a carrier
// notification and reports whether the order changed.
func (o *Order) ApplyShipmentOutcome(target Status, now time.Time) bool {
	newStatus, changed := o.status.ReconcileShipment(target)
	if changed {
		o.setStatus(newStatus, now)
	}
	return changed
}

func (o *Order) setStatus(status Status, now time.Time) {
	o.status = status
	o.updatedAt = now
}
