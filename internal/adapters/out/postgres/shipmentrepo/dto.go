// Package shipmentrepo persists shipments and their append-only tracking history.
package shipmentrepo

import (
	"time"

	"storefront/internal/adapters/out/postgres/columns"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO represents the database structure for shipments.
// Tracking events are stored in a child table and saved with the shipment.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CarrierOrderID string    `gorm:"uniqueIndex;not null"`
	Waybill        string    `gorm:"index"`
	TrackingID     string
	CourierCompany string
	CourierType    string
	Status         int                `gorm:"index;not null"`
	Recipient      columns.ContactDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	Price          decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0"`
	TrackingEvents []TrackingEventDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time          `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime:false;index"`
	LastPolledAt   *time.Time         `gorm:"index"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// TrackingEventDTO is one history entry, keyed by its position in the history.
type TrackingEventDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	Status     int       `gorm:"not null"`
	Note       string
	OccurredAt time.Time
}

func (TrackingEventDTO) TableName() string {
	return "shipment_tracking_events"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	history := s.History()
	events := make([]TrackingEventDTO, 0, len(history))
	for i, event := range history {
		events = append(events, TrackingEventDTO{
			ShipmentID: s.ID().Bytes(),
			Position:   i,
			Status:     int(event.Status()),
			Note:       event.Note(),
			OccurredAt: event.OccurredAt(),
		})
	}

	return ShipmentDTO{
		ID:             s.ID().Bytes(),
		OrderID:        s.OrderID().Bytes(),
		CarrierOrderID: s.CarrierOrderID(),
		Waybill:        s.Waybill(),
		TrackingID:     s.TrackingID(),
		CourierCompany: s.CourierCompany(),
		CourierType:    s.CourierType(),
		Status:         int(s.Status()),
		Recipient:      columns.ContactFromDomain(s.Recipient()),
		Price:          s.Price(),
		TrackingEvents: events,
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	recipient, err := dto.Recipient.ToDomain()
	if err != nil {
		return nil, err
	}

	history := make([]shipment.TrackingEvent, 0, len(dto.TrackingEvents))
	for _, event := range dto.TrackingEvents {
		history = append(history, shipment.NewTrackingEvent(shipment.Status(event.Status), event.Note, event.OccurredAt))
	}

	return shipment.RestoreShipment(id, orderID, shipment.CarrierOrder{
		CarrierOrderID: dto.CarrierOrderID,
		Waybill:        dto.Waybill,
		TrackingID:     dto.TrackingID,
		CourierCompany: dto.CourierCompany,
		CourierType:    dto.CourierType,
		Price:          dto.Price,
	}, shipment.Status(dto.Status), recipient, history, dto.CreatedAt, dto.UpdatedAt)
}
