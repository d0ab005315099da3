// Package lock serializes work on a single order across goroutines, or
// across processes when Redis is available.
package lock

import (
	"context"
	"sync"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// KeyedMutex is an in-process OrderLocker. Each order gets its own slot,
// created on first use and dropped when the last holder or waiter leaves.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[kernel.UUID]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

var _ ports.OrderLocker = (*KeyedMutex)(nil)

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[kernel.UUID]*slot)}
}

// Lock blocks until the order is free or ctx is done.
func (m *KeyedMutex) Lock(ctx context.Context, orderID kernel.UUID) (ports.UnlockFunc, error) {
	s := m.acquire(orderID)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(orderID)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			m.release(orderID)
		})
	}, nil
}

func (m *KeyedMutex) acquire(orderID kernel.UUID) *slot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[orderID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[orderID] = s
	}
	s.refs++
	return s
}

func (m *KeyedMutex) release(orderID kernel.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.slots[orderID]
	s.refs--
	if s.refs == 0 {
		delete(m.slots, orderID)
	}
}
