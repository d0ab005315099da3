package storerepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/store"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository implements StoreRepository using GORM.
type GormStoreRepository struct {
	db *gorm.DB
}

func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

func (r *GormStoreRepository) GetShippingConfig(ctx context.Context, storeID kernel.UUID) (*store.ShippingConfig, error) {
	if err := storeID.Validate(); err != nil {
		return nil, err
	}

	var dto ShippingConfigDTO
	if err := r.db.WithContext(ctx).First(&dto, "store_id = ?", storeID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("store", storeID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts a store shipping configuration. The tenant service owns this
// table; Save exists for seeding and tests.
func (r *GormStoreRepository) Save(ctx context.Context, cfg *store.ShippingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(cfg)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}
