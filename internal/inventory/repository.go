package inventory

import (
	"context"
	"time"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
)

type Repository interface {
	GetVariant(ctx context.Context, variantID string) (*model.ProductVariant, error)

	// ReserveWithRecord carves res.Qty out of the variant's available stock
	// and writes the reservation row in the same transaction. The availability
	// guard is part of the UPDATE itself, and a held counter is never without
	// a row the expiry sweep can find.
	ReserveWithRecord(ctx context.Context, res model.Reservation) error

	// Reservation rows.
	ReservationsByOrder(ctx context.Context, orderID string) ([]model.Reservation, error)
	ExpiredReservations(ctx context.Context, now time.Time) ([]model.Reservation, error)

	// RetireAndRelease deletes the row and returns its quantity to the ledger
	// in one transaction. A nil result means the row was already gone.
	RetireAndRelease(ctx context.Context, reservationID string) (*dto.ReleasedRow, error)
	// Retire deletes the row without touching the ledger (confirm semantics).
	Retire(ctx context.Context, reservationID string) (bool, error)
}
