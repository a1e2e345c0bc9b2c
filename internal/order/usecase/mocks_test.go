package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory"
	invdto "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/dto"
	productdto "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/dto"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*model.Order

	createErr error
	deleted   []string

	// updateHook runs before UpdateStatus applies, to simulate races.
	updateHook func(orderID string)
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*model.Order)}
}

func (f *fakeOrderRepo) CreateWithItems(_ context.Context, o *model.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, orderID)
	f.deleted = append(f.deleted, orderID)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, orderID string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) GetByNumber(_ context.Context, orderNumber string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListByPhone(_ context.Context, phone string) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.orders {
		if o.CustomerPhone == phone {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListExpiredPending(_ context.Context, now time.Time) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.orders {
		if o.Status == model.OrderStatusPending && o.ReservedUntil != nil && o.ReservedUntil.Before(now) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _ *dto.OrderFilters) ([]model.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	if f.updateHook != nil {
		f.updateHook(orderID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.ReservedUntil = nil
	return true, nil
}

type fakeInventory struct {
	reserveErr error

	reservedOrders  []string
	confirmedOrders []string
	cancelledOrders []string
	cancelErrs      map[string]error // orderID -> forced Cancel failure

	expired []model.Reservation

	retired map[string]bool // reservationID -> release flag
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		cancelErrs: make(map[string]error),
		retired:    make(map[string]bool),
	}
}

func (f *fakeInventory) CreateReservations(_ context.Context, orderID string, _ []invdto.ReserveItem, _ time.Duration) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reservedOrders = append(f.reservedOrders, orderID)
	return nil
}

func (f *fakeInventory) Confirm(_ context.Context, orderID string) (int, error) {
	f.confirmedOrders = append(f.confirmedOrders, orderID)
	return 1, nil
}

func (f *fakeInventory) Cancel(_ context.Context, orderID string) (int, error) {
	if err := f.cancelErrs[orderID]; err != nil {
		return 0, err
	}
	f.cancelledOrders = append(f.cancelledOrders, orderID)
	released := 0
	for _, res := range f.expired {
		if res.OrderID == orderID {
			if _, done := f.retired[res.ID]; !done {
				f.retired[res.ID] = true
				released++
			}
		}
	}
	return released, nil
}

func (f *fakeInventory) ExpiredReservations(_ context.Context, _ time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, res := range f.expired {
		if _, done := f.retired[res.ID]; !done {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeInventory) RetireReservation(_ context.Context, reservationID string, release bool) (bool, error) {
	if _, done := f.retired[reservationID]; done {
		return false, nil
	}
	f.retired[reservationID] = release
	return true, nil
}

type fakeProductRepo struct {
	variants map[string]*productdto.VariantDetail
	err      error
}

func (f *fakeProductRepo) FindAll(_ context.Context, _ *productdto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, _ string) (*model.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetVariantDetail(_ context.Context, variantID string) (*productdto.VariantDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.variants[variantID]
	if !ok {
		return nil, inventory.ErrVariantNotFound
	}
	return d, nil
}

type notification struct {
	orderID   string
	oldStatus model.OrderStatus
	newStatus model.OrderStatus
}

type fakeNotifier struct {
	err  error
	sent []notification
}

func (f *fakeNotifier) NotifyStatusChange(_ context.Context, o *model.Order, oldStatus, newStatus model.OrderStatus) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, notification{orderID: o.ID, oldStatus: oldStatus, newStatus: newStatus})
	return nil
}
