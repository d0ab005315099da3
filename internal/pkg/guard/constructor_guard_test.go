package guard_test

import (
	"errors"
	"sync"
	"testing"

	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardUsageExample shows the guard embedded in a command value.
func TestConstructorGuardUsageExample(t *testing.T) {
	type refundCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}
	errNotConstructed := errors.New("refundCommand must be created via newRefundCommand")

	newRefundCommand := func(orderID string) (refundCommand, error) {
		if orderID == "" {
			return refundCommand{}, errors.New("order id is required")
		}
		return refundCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}
	validate := func(c refundCommand) error { return c.guard.Validate(errNotConstructed) }

	t.Run("constructed", func(t *testing.T) {
		cmd, err := newRefundCommand("o-1")
		require.NoError(t, err)
		require.NoError(t, validate(cmd))
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		cmd := refundCommand{orderID: "o-1"}
		assert.Equal(t, errNotConstructed, validate(cmd))
	})

	t.Run("copies keep the constructed state", func(t *testing.T) {
		cmd, _ := newRefundCommand("o-1")
		copied := cmd
		require.NoError(t, validate(copied))
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("should not be returned")

	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(validationError))
		}()
	}
	wg.Wait()
}
