// Package orderrepo persists order aggregates. The item and shipping snapshots
// are flattened into the orders row.
package orderrepo

import (
	"time"

	"storefront/internal/adapters/out/postgres/columns"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey"`
	StoreID          uuid.UUID          `gorm:"type:uuid;index;not null"`
	UserID           uuid.UUID          `gorm:"type:uuid;index;not null"`
	ProductID        uuid.UUID          `gorm:"type:uuid;not null"`
	Item             ItemDTO            `gorm:"embedded;embeddedPrefix:item_"`
	ShippingRequired bool               `gorm:"not null;default:false"`
	Recipient        columns.ContactDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	CourierCompany   string
	CourierType      string
	ShippingCost     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status           int             `gorm:"index;not null"`
	CreatedAt        time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the purchased item snapshot embedded into the order row.
type ItemDTO struct {
	Name     string
	Value    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Quantity int
	Weight   int
}

func fromDomain(o *order.Order) OrderDTO {
	shipping := o.Shipping()
	return OrderDTO{
		ID:        o.ID().Bytes(),
		StoreID:   o.StoreID().Bytes(),
		UserID:    o.UserID().Bytes(),
		ProductID: o.ProductID().Bytes(),
		Item: ItemDTO{
			Name:     o.Item().Name(),
			Value:    o.Item().Value(),
			Quantity: o.Item().Quantity(),
			Weight:   o.Item().Weight(),
		},
		ShippingRequired: shipping.Required(),
		Recipient:        columns.ContactFromDomain(shipping.Recipient()),
		CourierCompany:   shipping.CourierCompany(),
		CourierType:      shipping.CourierType(),
		ShippingCost:     shipping.Cost(),
		Status:           int(o.Status()),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	item, err := order.NewItem(dto.Item.Name, dto.Item.Value, dto.Item.Quantity, dto.Item.Weight)
	if err != nil {
		return nil, err
	}

	shipping := order.NoShipping()
	if dto.ShippingRequired {
		recipient, contactErr := dto.Recipient.ToDomain()
		if contactErr != nil {
			return nil, contactErr
		}
		shipping, err = order.NewShipping(recipient, dto.CourierCompany, dto.CourierType, dto.ShippingCost)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(id, order.Details{
		StoreID:   storeID,
		UserID:    userID,
		ProductID: productID,
		Item:      item,
		Shipping:  shipping,
	}, order.Status(dto.Status), dto.CreatedAt, dto.UpdatedAt)
}
