package inventory

import (
	"context"
	"time"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
)

type UseCase interface {
	// CreateReservations holds stock for every line item or none of them.
	// On failure the already-reserved prefix is released and the error names
	// the failing variant.
	CreateReservations(ctx context.Context, orderID string, items []dto.ReserveItem, ttl time.Duration) error

	// Confirm deletes the order's reservations without releasing stock: the
	// held quantity stays spent. Returns the number of rows deleted.
	Confirm(ctx context.Context, orderID string) (int, error)

	// Cancel returns held stock to the ledger and deletes the order's
	// reservations. Safe to call on an order with no reservations, and safe
	// to call twice. Returns the number of rows released.
	Cancel(ctx context.Context, orderID string) (int, error)

	ExpiredReservations(ctx context.Context, now time.Time) ([]model.Reservation, error)

	// RetireReservation retires a single row, releasing stock only when
	// release is true. A row already retired by a concurrent path is a no-op
	// success (retired=false).
	RetireReservation(ctx context.Context, reservationID string, release bool) (retired bool, err error)
}
