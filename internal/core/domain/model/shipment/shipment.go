package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// CarrierOrder holds what the carrier returned when the shipment was booked.
type CarrierOrder struct {
	CarrierOrderID string
	Waybill        string
	TrackingID     string
	CourierCompany string
	CourierType    string
	Price          decimal.Decimal
}

// CarrierUpdate is a status report for an existing shipment, from a webhook
// or from polling the carrier. Empty strings mean "not reported".
type CarrierUpdate struct {
	Status         Status
	Waybill        string
	TrackingID     string
	CourierCompany string
	CourierType    string
	Note           string
	OccurredAt     time.Time
}

// Shipment is the local record of the carrier order that fulfils one order.
type Shipment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	carrierOrderID string
	waybill        string
	trackingID     string
	courierCompany string
	courierType    string
	status         Status
	recipient      kernel.Contact
	price          decimal.Decimal
	history        []TrackingEvent
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewShipment records a freshly booked carrier order as Confirmed.
func NewShipment(id, orderID kernel.UUID, booked CarrierOrder, recipient kernel.Contact, now time.Time) (*Shipment, error) {
	history := []TrackingEvent{NewTrackingEvent(Confirmed, "shipment created", now)}
	return RestoreShipment(id, orderID, booked, Confirmed, recipient, history, now, now)
}

// RestoreShipment rebuilds a shipment from persistence.
func RestoreShipment(
	id, orderID kernel.UUID,
	booked CarrierOrder,
	status Status,
	recipient kernel.Contact,
	history []TrackingEvent,
	createdAt, updatedAt time.Time,
) (*Shipment, error) {
	var errList []error
	errList = append(errList, id.Validate(), orderID.Validate(), status.Validate())
	if strings.TrimSpace(booked.CarrierOrderID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("carrier order id"))
	}
	if booked.Price.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"shipment price", fmt.Errorf("%s is negative", booked.Price)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Shipment{
		id:             id,
		orderID:        orderID,
		carrierOrderID: strings.TrimSpace(booked.CarrierOrderID),
		waybill:        strings.TrimSpace(booked.Waybill),
		trackingID:     strings.TrimSpace(booked.TrackingID),
		courierCompany: booked.CourierCompany,
		courierType:    booked.CourierType,
		status:         status,
		recipient:      recipient,
		price:          booked.Price,
		history:        history,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID { return s.id }
func (s *Shipment) OrderID() kernel.UUID { return s.orderID }
func (s *Shipment) CarrierOrderID() string { return s.carrierOrderID }
func (s *Shipment) Waybill() string { return s.waybill }
func (s *Shipment) TrackingID() string { return s.trackingID }
func (s *Shipment) CourierCompany() string { return s.courierCompany }
func (s *Shipment) CourierType() string { return s.courierType }
func (s *Shipment) Status() Status { return s.status }
func (s *Shipment) Recipient() kernel.Contact { return s.recipient }
func (s *Shipment) Price() decimal.Decimal { return s.price }
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time { return s.updatedAt }

// History returns a copy of the tracking events, oldest first.
func (s *Shipment) History() []TrackingEvent {
	history := make([]TrackingEvent, len(s.history))
	copy(history, s.history)
	return history
}

// IsTrackable reports whether polling the carrier can still change the shipment.
func (s *Shipment) IsTrackable() bool {
	return s.waybill != "" && !s.status.IsTerminal() && s.status != Delivered
}

// ApplyCarrierUpdate merges a carrier status report. accepted reports whether
// the status move was allowed; changed reports whether anything needs saving.
// Identifiers are merged even when the status is refused, and are only ever
// filled in, never blanked. A history entry is appended only when the status
// actually changes, so a replayed report leaves the shipment as it was.
func (s *Shipment) ApplyCarrierUpdate(update CarrierUpdate, now time.Time) (accepted, changed bool) {
	fill := func(field *string, value string) {
		value = strings.TrimSpace(value)
		if value != "" && value != *field {
			*field = value
			changed = true
		}
	}
	fill(&s.waybill, update.Waybill)
	fill(&s.trackingID, update.TrackingID)
	fill(&s.courierCompany, update.CourierCompany)
	fill(&s.courierType, update.CourierType)

	accepted = s.status.CanTransitionTo(update.Status)
	if accepted && s.status != update.Status {
		occurredAt := update.OccurredAt
		if occurredAt.IsZero() {
			occurredAt = now
		}
		s.history = append(s.history, NewTrackingEvent(update.Status, update.Note, occurredAt))
		s.status = update.Status
		changed = true
	}

	if changed {
		s.updatedAt = now
	}
	return accepted, changed
}
