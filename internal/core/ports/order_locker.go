package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// UnlockFunc releases a lock taken by OrderLocker. It is safe to call once.
type UnlockFunc func()

// OrderLocker serializes mutations of a single order across goroutines and,
// depending on the implementation, across processes. Lock blocks until the
// lock is held or ctx is done.
type OrderLocker interface {
	Lock(ctx context.Context, orderID kernel.UUID) (UnlockFunc, error)
}
