package kernel

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when a Contact was not created via NewContact.
var ErrContactIsNotConstructed = errors.New("contact must be created via NewContact")

// Contact is a snapshot of a person or place a parcel moves between: the
// receiver of an order or the shipper/origin of a store. It is copied onto
// orders and shipments so later profile edits never rewrite history.
type Contact struct {
	name       string
	phone      string
	email      string
	address    string
	postalCode string

	guard guard.ConstructorGuard
}

// NewContact validates and builds a Contact. Email is optional; everything a
// carrier needs to hand over a parcel is required.
func NewContact(name, phone, email, address, postalCode string) (Contact, error) {
	c := Contact{
		name:       strings.TrimSpace(name),
		phone:      strings.TrimSpace(phone),
		email:      strings.TrimSpace(email),
		address:    strings.TrimSpace(address),
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		required("contact name", c.name),
		required("contact phone", c.phone),
		required("contact address", c.address),
		required("contact postal code", c.postalCode),
	); err != nil {
		return Contact{}, err
	}

	return c, nil
}

func required(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func (c Contact) Name() string { return c.name }
func (c Contact) Phone() string { return c.phone }
func (c Contact) Email() string { return c.email }
func (c Contact) Address() string { return c.address }
func (c Contact) PostalCode() string { return c.postalCode }

// Validate reports whether the contact was built through NewContact.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// IsEqual compares contacts by value.
func (c Contact) IsEqual(other Contact) bool {
	return c.name == other.name &&
		c.phone == other.phone &&
		c.email == other.email &&
		c.address == other.address &&
		c.postalCode == other.postalCode
}
