package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// transient marks infrastructure failures as retryable while letting
// domain outcomes (missing references, validation) through untouched.
func transient(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrObjectNotFound) || errs.IsValidation(err) || errors.Is(err, errs.ErrTransient) {
		return err
	}
	return errs.NewTransientError(op, err)
}

func lockOrder(ctx context.Context, locker ports.OrderLocker, orderID kernel.UUID) (ports.UnlockFunc, error) {
	unlock, err := locker.Lock(ctx, orderID)
	if err != nil {
		return nil, errs.NewTransientError("lock order "+orderID.String(), err)
	}
	return unlock, nil
}
