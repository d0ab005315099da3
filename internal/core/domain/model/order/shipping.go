package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is the snapshot of the purchased product the carrier needs for a manifest.
type Item struct {
	name     string
	value    decimal.Decimal
	quantity int
	weight   int
}

// NewItem validates an item snapshot. Weight is in grams.
func NewItem(name string, value decimal.Decimal, quantity, weight int) (Item, error) {
	item := Item{
		name:     strings.TrimSpace(name),
		value:    value,
		quantity: quantity,
		weight:   weight,
	}

	var errList []error
	if item.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("item name"))
	}
	if value.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"item value", fmt.Errorf("%s is negative", value)))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"item quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if weight <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"item weight", fmt.Errorf("%d is not greater than 0", weight)))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Name() string { return i.name }
func (i Item) Value() decimal.Decimal { return i.value }
func (i Item) Quantity() int { return i.quantity }
func (i Item) Weight() int { return i.weight }

// Shipping holds the shipping choices captured at checkout.
type Shipping struct {
	required       bool
	recipient      kernel.Contact
	courierCompany string
	courierType    string
	cost           decimal.Decimal
}

// NoShipping describes an order fulfilled without a carrier (digital goods, pickup).
func NoShipping() Shipping {
	return Shipping{}
}

// NewShipping validates the shipping snapshot of an order that needs a carrier.
func NewShipping(recipient kernel.Contact, courierCompany, courierType string, cost decimal.Decimal) (Shipping, error) {
	s := Shipping{
		required:       true,
		recipient:      recipient,
		courierCompany: strings.TrimSpace(courierCompany),
		courierType:    strings.TrimSpace(courierType),
		cost:           cost,
	}

	var errList []error
	if err := recipient.Validate(); err != nil {
		errList = append(errList, err)
	}
	if s.courierCompany == "" {
		errList = append(errList, errs.NewValueIsRequiredError("courier company"))
	}
	if s.courierType == "" {
		errList = append(errList, errs.NewValueIsRequiredError("courier type"))
	}
	if cost.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"shipping cost", fmt.Errorf("%s is negative", cost)))
	}
	if err := errors.Join(errList...); err != nil {
		return Shipping{}, err
	}

	return s, nil
}

func (s Shipping) Required() bool { return s.required }
func (s Shipping) Recipient() kernel.Contact { return s.recipient }
func (s Shipping) CourierCompany() string { return s.courierCompany }
func (s Shipping) CourierType() string { return s.courierType }
func (s Shipping) Cost() decimal.Decimal { return s.cost }
