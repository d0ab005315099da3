package store

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var ErrShippingConfigIsNotConstructed = errors.New("ShippingConfig must be created via NewShippingConfig constructor")

// Shipper is the sender printed on the carrier manifest.
type Shipper struct {
	Contact      kernel.Contact
	Organisation string
}

// ShippingConfig is the shipping setup of a store, owned by the tenant
// service and read by this core when booking shipments.
type ShippingConfig struct {
	storeID  kernel.UUID
	ownerID  kernel.UUID
	provider string
	active   bool
	shipper  Shipper
	origin   kernel.Contact

	isConstructed bool
}

func NewShippingConfig(
	storeID, ownerID kernel.UUID,
	provider string,
	active bool,
	shipper Shipper,
	origin kernel.Contact,
) (*ShippingConfig, error) {
	if err := errors.Join(storeID.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}

	return &ShippingConfig{
		storeID:       storeID,
		ownerID:       ownerID,
		provider:      strings.TrimSpace(provider),
		active:        active,
		shipper:       shipper,
		origin:        origin,
		isConstructed: true,
	}, nil
}

func (c *ShippingConfig) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrShippingConfigIsNotConstructed
	}
	return nil
}

func (c *ShippingConfig) StoreID() kernel.UUID { return c.storeID }
func (c *ShippingConfig) OwnerID() kernel.UUID { return c.ownerID }
func (c *ShippingConfig) Provider() string { return c.provider }
func (c *ShippingConfig) Active() bool { return c.active }
func (c *ShippingConfig) Shipper() Shipper { return c.shipper }
func (c *ShippingConfig) Origin() kernel.Contact { return c.origin }

// CanShip returns a precondition error unless the store has an active
// provider and complete shipper and origin contacts.
func (c *ShippingConfig) CanShip() error {
	if !c.active || c.provider == "" {
		return errs.NewPreconditionFailedError("store has no active shipping provider")
	}
	if err := errors.Join(c.shipper.Contact.Validate(), c.origin.Validate()); err != nil {
		return errs.NewPreconditionFailedErrorWithCause("store shipping origin is incomplete", err)
	}
	return nil
}
