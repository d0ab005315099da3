// Package storerepo reads store shipping configuration.
package storerepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// ShippingConfigDTO is the shipping setup of a store. Empty contact columns
// mean the tenant has not filled them in yet.
type ShippingConfigDTO struct {
	StoreID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID             uuid.UUID `gorm:"type:uuid;index;not null"`
	Provider            string
	Active              bool `gorm:"not null;default:false"`
	ShipperName         string
	ShipperPhone        string
	ShipperEmail        string
	ShipperOrganisation string
	OriginContactName   string
	OriginContactPhone  string
	OriginAddress       string
	OriginPostalCode    string
}

func (ShippingConfigDTO) TableName() string {
	return "store_shipping_configs"
}

func fromDomain(c *store.ShippingConfig) ShippingConfigDTO {
	shipper := c.Shipper()
	origin := c.Origin()
	return ShippingConfigDTO{
		StoreID:             c.StoreID().Bytes(),
		OwnerID:             c.OwnerID().Bytes(),
		Provider:            c.Provider(),
		Active:              c.Active(),
		ShipperName:         shipper.Contact.Name(),
		ShipperPhone:        shipper.Contact.Phone(),
		ShipperEmail:        shipper.Contact.Email(),
		ShipperOrganisation: shipper.Organisation,
		OriginContactName:   origin.Name(),
		OriginContactPhone:  origin.Phone(),
		OriginAddress:       origin.Address(),
		OriginPostalCode:    origin.PostalCode(),
	}
}

// toDomain keeps incomplete contacts as zero values so that CanShip reports
// the missing origin instead of the read failing.
func toDomain(dto ShippingConfigDTO) (*store.ShippingConfig, error) {
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	origin, _ := kernel.NewContact(dto.OriginContactName, dto.OriginContactPhone, "", dto.OriginAddress, dto.OriginPostalCode)
	shipperContact, _ := kernel.NewContact(dto.ShipperName, dto.ShipperPhone, dto.ShipperEmail,
		dto.OriginAddress, dto.OriginPostalCode)

	return store.NewShippingConfig(storeID, ownerID, dto.Provider, dto.Active, store.Shipper{
		Contact:      shipperContact,
		Organisation: dto.ShipperOrganisation,
	}, origin)
}
