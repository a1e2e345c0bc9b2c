package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo mirrors the ledger semantics of the Postgres repository: the
// counter increment and the row insert succeed or fail as one unit, releases
// floor at zero, and row deletion is the linearization point for retires.
type fakeRepo struct {
	stock        map[string]int
	reserved     map[string]int
	reservations map[string]model.Reservation

	recordErr map[string]error // variantID -> forced transaction failure
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		stock:        make(map[string]int),
		reserved:     make(map[string]int),
		reservations: make(map[string]model.Reservation),
		recordErr:    make(map[string]error),
	}
}

func (f *fakeRepo) GetVariant(_ context.Context, id string) (*model.ProductVariant, error) {
	if _, ok := f.stock[id]; !ok {
		return nil, inventory.ErrVariantNotFound
	}
	return &model.ProductVariant{StockQty: f.stock[id], ReservedQty: f.reserved[id]}, nil
}

func (f *fakeRepo) ReserveWithRecord(_ context.Context, res model.Reservation) error {
	if err := f.recordErr[res.ProductVariantID]; err != nil {
		return err
	}
	stock, ok := f.stock[res.ProductVariantID]
	if !ok {
		return inventory.ErrVariantNotFound
	}
	available := stock - f.reserved[res.ProductVariantID]
	if available < res.Qty {
		return &inventory.InsufficientStockError{
			VariantID: res.ProductVariantID,
			Requested: res.Qty,
			Available: available,
		}
	}
	f.reserved[res.ProductVariantID] += res.Qty
	f.reservations[res.ID] = res
	return nil
}

func (f *fakeRepo) ReservationsByOrder(_ context.Context, orderID string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ExpiredReservations(_ context.Context, now time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.ReservedUntil.Before(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) RetireAndRelease(_ context.Context, id string) (*dto.ReleasedRow, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, nil
	}
	delete(f.reservations, id)
	before := f.reserved[r.ProductVariantID]
	after := before - r.Qty
	if after < 0 {
		after = 0
	}
	f.reserved[r.ProductVariantID] = after
	return &dto.ReleasedRow{
		ReservationID: id,
		VariantID:     r.ProductVariantID,
		Qty:           r.Qty,
		Before:        before,
		After:         after,
	}, nil
}

func (f *fakeRepo) Retire(_ context.Context, id string) (bool, error) {
	if _, ok := f.reservations[id]; !ok {
		return false, nil
	}
	delete(f.reservations, id)
	return true, nil
}

// heldWithoutRow reports variants whose reserved counter is not fully backed
// by reservation rows.
func (f *fakeRepo) heldWithoutRow() map[string]int {
	recorded := make(map[string]int)
	for _, r := range f.reservations {
		recorded[r.ProductVariantID] += r.Qty
	}
	orphaned := make(map[string]int)
	for id, qty := range f.reserved {
		if qty > recorded[id] {
			orphaned[id] = qty - recorded[id]
		}
	}
	return orphaned
}

func TestCreateReservationsHoldsEveryLine(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	repo.stock["v2"] = 5
	uc := NewInventoryUseCase(repo, zap.NewNop())

	err := uc.CreateReservations(context.Background(), "order-1", []dto.ReserveItem{
		{VariantID: "v1", Qty: 2},
		{VariantID: "v2", Qty: 5},
	}, 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.reserved["v1"])
	assert.Equal(t, 5, repo.reserved["v2"])
	assert.Len(t, repo.reservations, 2)
	assert.Empty(t, repo.heldWithoutRow())
}

func TestCreateReservationsRollsBackReservedPrefix(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	repo.stock["v2"] = 1
	uc := NewInventoryUseCase(repo, zap.NewNop())

	err := uc.CreateReservations(context.Background(), "order-1", []dto.ReserveItem{
		{VariantID: "v1", Qty: 2},
		{VariantID: "v2", Qty: 3},
	}, 15*time.Minute)

	var insufficient *inventory.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "v2", insufficient.VariantID)
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 1, insufficient.Available)

	// The v1 hold must have been retired and released.
	assert.Equal(t, 0, repo.reserved["v1"])
	assert.Empty(t, repo.reservations)
}

func TestCreateReservationsRollsBackOnRecordFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	repo.stock["v2"] = 5
	repo.recordErr["v2"] = errors.New("connection reset")
	uc := NewInventoryUseCase(repo, zap.NewNop())

	err := uc.CreateReservations(context.Background(), "order-1", []dto.ReserveItem{
		{VariantID: "v1", Qty: 4},
		{VariantID: "v2", Qty: 1},
	}, 15*time.Minute)
	require.Error(t, err)

	assert.Equal(t, 0, repo.reserved["v1"])
	assert.Empty(t, repo.reservations)
}

func TestPartiallyCommittedCheckoutIsSweepable(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	repo.stock["v2"] = 5
	uc := NewInventoryUseCase(repo, zap.NewNop())

	// First line of a two-line checkout committed, then the process died
	// before the second line ran.
	require.NoError(t, uc.CreateReservations(context.Background(), "order-1",
		[]dto.ReserveItem{{VariantID: "v1", Qty: 4}}, 15*time.Minute))

	// Every held counter is backed by a row, so the hold is visible to the
	// sweep once the TTL passes and the stock comes back.
	assert.Empty(t, repo.heldWithoutRow())

	later := time.Now().Add(24 * time.Hour)
	expired, err := uc.ExpiredReservations(context.Background(), later)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "order-1", expired[0].OrderID)

	retired, err := uc.RetireReservation(context.Background(), expired[0].ID, true)
	require.NoError(t, err)
	assert.True(t, retired)
	assert.Equal(t, 0, repo.reserved["v1"])
}

func TestConfirmRetiresWithoutRelease(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	uc := NewInventoryUseCase(repo, zap.NewNop())

	require.NoError(t, uc.CreateReservations(context.Background(), "order-1",
		[]dto.ReserveItem{{VariantID: "v1", Qty: 4}}, 15*time.Minute))

	deleted, err := uc.Confirm(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Empty(t, repo.reservations)

	// Confirm keeps the quantity spent: reserved_qty untouched.
	assert.Equal(t, 4, repo.reserved["v1"])
}

func TestCancelReleasesHeldStock(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	repo.stock["v2"] = 6
	uc := NewInventoryUseCase(repo, zap.NewNop())

	require.NoError(t, uc.CreateReservations(context.Background(), "order-1", []dto.ReserveItem{
		{VariantID: "v1", Qty: 4},
		{VariantID: "v2", Qty: 2},
	}, 15*time.Minute))

	released, err := uc.Cancel(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, 2, released)
	assert.Equal(t, 0, repo.reserved["v1"])
	assert.Equal(t, 0, repo.reserved["v2"])
	assert.Empty(t, repo.reservations)
}

func TestCancelIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	uc := NewInventoryUseCase(repo, zap.NewNop())

	require.NoError(t, uc.CreateReservations(context.Background(), "order-1",
		[]dto.ReserveItem{{VariantID: "v1", Qty: 4}}, 15*time.Minute))

	released, err := uc.Cancel(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	// Second cancel finds no rows and releases nothing more.
	released, err = uc.Cancel(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, 0, released)
	assert.Equal(t, 0, repo.reserved["v1"])
}

func TestCancelOrderWithoutReservations(t *testing.T) {
	repo := newFakeRepo()
	uc := NewInventoryUseCase(repo, zap.NewNop())

	released, err := uc.Cancel(context.Background(), "missing-order")
	require.NoError(t, err)
	assert.Equal(t, 0, released)
}

func TestRetireReservation(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	uc := NewInventoryUseCase(repo, zap.NewNop())

	require.NoError(t, uc.CreateReservations(context.Background(), "order-1",
		[]dto.ReserveItem{{VariantID: "v1", Qty: 4}}, 15*time.Minute))
	rows, err := repo.ReservationsByOrder(context.Background(), "order-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	id := rows[0].ID

	retired, err := uc.RetireReservation(context.Background(), id, true)
	require.NoError(t, err)
	assert.True(t, retired)
	assert.Equal(t, 0, repo.reserved["v1"])

	// Already gone: no-op success either way.
	retired, err = uc.RetireReservation(context.Background(), id, true)
	require.NoError(t, err)
	assert.False(t, retired)

	retired, err = uc.RetireReservation(context.Background(), id, false)
	require.NoError(t, err)
	assert.False(t, retired)
}

func TestExpiredReservations(t *testing.T) {
	repo := newFakeRepo()
	repo.stock["v1"] = 10
	uc := NewInventoryUseCase(repo, zap.NewNop())

	require.NoError(t, uc.CreateReservations(context.Background(), "order-1",
		[]dto.ReserveItem{{VariantID: "v1", Qty: 1}}, -time.Minute))
	require.NoError(t, uc.CreateReservations(context.Background(), "order-2",
		[]dto.ReserveItem{{VariantID: "v1", Qty: 1}}, time.Hour))

	expired, err := uc.ExpiredReservations(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "order-1", expired[0].OrderID)
}
