package commands_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/payment"
	"storefront/internal/core/domain/model/shipment"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// testContext returns a context that is canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// memDB is an in-memory order aggregate store. Writes are staged in the unit
// of work and only become visible on Commit.
type memDB struct {
	mu        sync.Mutex
	orders    map[kernel.UUID]*order.Order
	payments  map[kernel.UUID]*payment.Payment
	shipments map[kernel.UUID]*shipment.Shipment
	polled    map[kernel.UUID]time.Time
}

func newMemDB() *memDB {
	return &memDB{
		orders:    make(map[kernel.UUID]*order.Order),
		payments:  make(map[kernel.UUID]*payment.Payment),
		shipments: make(map[kernel.UUID]*shipment.Shipment),
		polled:    make(map[kernel.UUID]time.Time),
	}
}

func (db *memDB) order(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	db.mu.Lock()
	defer db.mu.Unlock()
	o, ok := db.orders[id]
	require.True(t, ok)
	return cloneOrder(o)
}

func (db *memDB) payment(id kernel.UUID) *payment.Payment {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p, ok := db.payments[id]; ok {
		return clonePayment(p)
	}
	return nil
}

func (db *memDB) shipment(id kernel.UUID) *shipment.Shipment {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s, ok := db.shipments[id]; ok {
		return cloneShipment(s)
	}
	return nil
}

func (db *memDB) Create() commands.UoW { return &memUoW{db: db} }

type memPaymentUoWFactory struct{ db *memDB }

func (f memPaymentUoWFactory) Create() commands.PaymentUoW { return &memUoW{db: f.db} }

type memShipmentUoWFactory struct{ db *memDB }

func (f memShipmentUoWFactory) Create() commands.ShipmentUoW { return &memUoW{db: f.db} }

type memUoW struct {
	db     *memDB
	staged []func()
}

func (u *memUoW) Begin(context.Context) error { return nil }

func (u *memUoW) Commit(context.Context) error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	for _, apply := range u.staged {
		apply()
	}
	u.staged = nil
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	u.staged = nil
	return nil
}

func (u *memUoW) OrderRepository() ports.OrderRepository { return memOrders{u} }
func (u *memUoW) PaymentRepository() ports.PaymentRepository { return memPayments{u} }
func (u *memUoW) ShipmentRepository() ports.ShipmentRepository { return memShipments{u} }

type memOrders struct{ u *memUoW }

func (r memOrders) Add(_ context.Context, o *order.Order) error {
	c := cloneOrder(o)
	r.u.staged = append(r.u.staged, func() { r.u.db.orders[c.ID()] = c })
	return nil
}

func (r memOrders) Update(ctx context.Context, o *order.Order) error { return r.Add(ctx, o) }

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.u.db.mu.Lock()
	defer r.u.db.mu.Unlock()
	o, ok := r.u.db.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(o), nil
}

func (r memOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

type memPayments struct{ u *memUoW }

func (r memPayments) Add(_ context.Context, p *payment.Payment) error {
	c := clonePayment(p)
	r.u.staged = append(r.u.staged, func() { r.u.db.payments[c.OrderID()] = c })
	return nil
}

func (r memPayments) Update(ctx context.Context, p *payment.Payment) error { return r.Add(ctx, p) }

func (r memPayments) GetByOrderID(_ context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	r.u.db.mu.Lock()
	defer r.u.db.mu.Unlock()
	p, ok := r.u.db.payments[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("payment", orderID.String())
	}
	return clonePayment(p), nil
}

type memShipments struct{ u *memUoW }

func (r memShipments) Add(_ context.Context, s *shipment.Shipment) error {
	c := cloneShipment(s)
	r.u.staged = append(r.u.staged, func() { r.u.db.shipments[c.OrderID()] = c })
	return nil
}

func (r memShipments) Update(ctx context.Context, s *shipment.Shipment) error { return r.Add(ctx, s) }

func (r memShipments) GetByOrderID(_ context.Context, orderID kernel.UUID) (*shipment.Shipment, error) {
	r.u.db.mu.Lock()
	defer r.u.db.mu.Unlock()
	s, ok := r.u.db.shipments[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", orderID.String())
	}
	return cloneShipment(s), nil
}

func (r memShipments) GetByCarrierOrderID(_ context.Context, carrierOrderID string) (*shipment.Shipment, error) {
	r.u.db.mu.Lock()
	defer r.u.db.mu.Unlock()
	for _, s := range r.u.db.shipments {
		if s.CarrierOrderID() == carrierOrderID {
			return cloneShipment(s), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shipment", carrierOrderID)
}

func (r memShipments) ListTrackable(_ context.Context, limit int) ([]*shipment.Shipment, error) {
	r.u.db.mu.Lock()
	defer r.u.db.mu.Unlock()
	var trackable []*shipment.Shipment
	for _, s := range r.u.db.shipments {
		if s.IsTrackable() {
			trackable = append(trackable, s)
		}
	}
	slices.SortFunc(trackable, func(a, b *shipment.Shipment) int {
		pa, pb := r.u.db.polled[a.ID()], r.u.db.polled[b.ID()]
		if c := pa.Compare(pb); c != 0 {
			return c
		}
		return strings.Compare(a.CarrierOrderID(), b.CarrierOrderID())
	})

	out := make([]*shipment.Shipment, 0, limit)
	for _, s := range trackable[:min(limit, len(trackable))] {
		out = append(out, cloneShipment(s))
	}
	return out, nil
}

func (r memShipments) MarkPolled(_ context.Context, ids []kernel.UUID, at time.Time) error {
	r.u.db.mu.Lock()
	defer r.u.db.mu.Unlock()
	for _, id := range ids {
		r.u.db.polled[id] = at
	}
	return nil
}

func cloneOrder(o *order.Order) *order.Order {
	c, err := order.RestoreOrder(o.ID(), order.Details{
		StoreID:   o.StoreID(),
		UserID:    o.UserID(),
		ProductID: o.ProductID(),
		Item:      o.Item(),
		Shipping:  o.Shipping(),
	}, o.Status(), o.CreatedAt(), o.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func clonePayment(p *payment.Payment) *payment.Payment {
	c, err := payment.RestorePayment(p.ID(), p.OrderID(), p.Method(), p.Amount(), p.Status(),
		p.TransactionStatus(), p.PaidAt(), p.CreatedAt(), p.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func cloneShipment(s *shipment.Shipment) *shipment.Shipment {
	c, err := shipment.RestoreShipment(s.ID(), s.OrderID(), shipment.CarrierOrder{
		CarrierOrderID: s.CarrierOrderID(),
		Waybill:        s.Waybill(),
		TrackingID:     s.TrackingID(),
		CourierCompany: s.CourierCompany(),
		CourierType:    s.CourierType(),
		Price:          s.Price(),
	}, s.Status(), s.Recipient(), s.History(), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

// noopLocker hands out locks that never block.
type noopLocker struct{}

func (noopLocker) Lock(context.Context, kernel.UUID) (ports.UnlockFunc, error) {
	return func() {}, nil
}

// mutexLocker serializes every order on one mutex.
type mutexLocker struct{ mu sync.Mutex }

func (l *mutexLocker) Lock(context.Context, kernel.UUID) (ports.UnlockFunc, error) {
	l.mu.Lock()
	return l.mu.Unlock, nil
}

func testRecipient(t *testing.T) kernel.Contact {
	t.Helper()
	c, err := kernel.NewContact("Siti Rahma", "081234567890", "siti@example.com", "Jl. Merdeka 1, Bandung", "40111")
	require.NoError(t, err)
	return c
}

func newTestOrder(t *testing.T, storeID, userID kernel.UUID, status order.Status, withShipping bool) *order.Order {
	t.Helper()

	item, err := order.NewItem("Batik Shirt", decimal.NewFromInt(150000), 1, 400)
	require.NoError(t, err)

	shipping := order.NoShipping()
	if withShipping {
		shipping, err = order.NewShipping(testRecipient(t), "jne", "reg", decimal.NewFromInt(18000))
		require.NoError(t, err)
	}

	o, err := order.RestoreOrder(kernel.NewUUID(), order.Details{
		StoreID:   storeID,
		UserID:    userID,
		ProductID: kernel.NewUUID(),
		Item:      item,
		Shipping:  shipping,
	}, status, fixedNow.Add(-time.Hour), fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func newTestPayment(t *testing.T, orderID kernel.UUID, status payment.Status) *payment.Payment {
	t.Helper()
	var paidAt *time.Time
	if status == payment.Paid {
		at := fixedNow.Add(-30 * time.Minute)
		paidAt = &at
	}
	p, err := payment.RestorePayment(kernel.NewUUID(), orderID, "bank_transfer", decimal.NewFromInt(168000),
		status, "", paidAt, fixedNow.Add(-time.Hour), fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return p
}

func newTestShipment(t *testing.T, orderID kernel.UUID, carrierOrderID string, status shipment.Status) *shipment.Shipment {
	t.Helper()
	s, err := shipment.RestoreShipment(kernel.NewUUID(), orderID, shipment.CarrierOrder{
		CarrierOrderID: carrierOrderID,
		Waybill:        "WYB-" + carrierOrderID,
		CourierCompany: "jne",
		CourierType:    "reg",
		Price:          decimal.NewFromInt(18000),
	}, status, testRecipient(t), nil, fixedNow.Add(-time.Hour), fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return s
}

func (db *memDB) seed(o *order.Order, p *payment.Payment, s *shipment.Shipment) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.orders[o.ID()] = cloneOrder(o)
	if p != nil {
		db.payments[o.ID()] = clonePayment(p)
	}
	if s != nil {
		db.shipments[o.ID()] = cloneShipment(s)
	}
}
