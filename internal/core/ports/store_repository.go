package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/store"
)

// StoreRepository resolves store shipping configuration. Stores are owned by
// the tenant service; this core only reads them.
type StoreRepository interface {
	// GetShippingConfig returns errs.ErrObjectNotFound for unknown stores.
	GetShippingConfig(ctx context.Context, storeID kernel.UUID) (*store.ShippingConfig, error)
}
