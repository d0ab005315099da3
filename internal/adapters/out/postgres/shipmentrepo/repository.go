package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/shipment"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var finishedStatuses = []int{int(shipment.Delivered), int(shipment.Cancelled), int(shipment.Returned)}

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add inserts a shipment with its initial history. The unique order and
// carrier order indexes turn a second booking into a conflict.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("shipment", aggregate.OrderID().String())
		}
		return err
	}
	return nil
}

// Update saves the shipment row and upserts its history by position. The poll
// stamp is owned by MarkPolled and left untouched.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var exists int64
	if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Omit("LastPolledAt").
		Save(&dto).Error
}

func (r *GormShipmentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "order_id = ?", orderID.Bytes())
}

func (r *GormShipmentRepository) GetByCarrierOrderID(ctx context.Context, carrierOrderID string) (*shipment.Shipment, error) {
	if carrierOrderID == "" {
		return nil, errs.NewValueIsRequiredError("carrier order id")
	}
	return r.first(ctx, "carrier_order_id = ?", carrierOrderID)
}

// ListTrackable returns shipments with a waybill that are not finished yet.
// Never polled shipments come first, then the least recently polled.
func (r *GormShipmentRepository) ListTrackable(ctx context.Context, limit int) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := r.withHistory(ctx).
		Where("waybill <> '' AND status NOT IN ?", finishedStatuses).
		Order("last_polled_at IS NOT NULL").
		Order("last_polled_at").
		Order("updated_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

// MarkPolled stamps the shipments as polled at the given time.
func (r *GormShipmentRepository) MarkPolled(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id IN ?", keys).
		UpdateColumn("last_polled_at", at).Error
}

func (r *GormShipmentRepository) first(ctx context.Context, query string, arg any) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	if err := r.withHistory(ctx).First(&dto, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", arg)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormShipmentRepository) withHistory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("TrackingEvents", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
