package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetVariant(ctx context.Context, variantID string) (*model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.DB.GetContext(ctx, &v, `SELECT * FROM product_variants WHERE id = $1`, variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrVariantNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ReserveWithRecord increments the variant's reserved counter and inserts the
// reservation row in one transaction. The availability guard is part of the
// UPDATE itself, so two concurrent reservations can never both take the last
// units, and the counter is never committed without its row.
func (r *PGRepository) ReserveWithRecord(ctx context.Context, res model.Reservation) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
        UPDATE product_variants
        SET reserved_qty = reserved_qty + $2, updated_at = now()
        WHERE id = $1 AND stock_qty - reserved_qty >= $2
    `, res.ProductVariantID, res.Qty)
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// No row updated: either the variant does not exist or the available
		// quantity was too low at execution time.
		v, err := r.GetVariant(ctx, res.ProductVariantID)
		if err != nil {
			return err
		}
		return &inventory.InsufficientStockError{
			VariantID: res.ProductVariantID,
			Requested: res.Qty,
			Available: v.Available(),
		}
	}

	if _, err := tx.NamedExecContext(ctx, `
        INSERT INTO inventory_reservations (id, order_id, product_variant_id, qty, reserved_until, created_at)
        VALUES (:id, :order_id, :product_variant_id, :qty, :reserved_until, :created_at)
    `, res); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return tx.Commit()
}

type execQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func releaseStock(ctx context.Context, q execQueryer, variantID string, qty int) (int, int, error) {
	var before, after int
	err := q.QueryRowContext(ctx, `
        WITH prev AS (
            SELECT reserved_qty FROM product_variants WHERE id = $1 FOR UPDATE
        )
        UPDATE product_variants v
        SET reserved_qty = GREATEST(v.reserved_qty - $2, 0), updated_at = now()
        FROM prev
        WHERE v.id = $1
        RETURNING prev.reserved_qty, v.reserved_qty
    `, variantID, qty).Scan(&before, &after)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, inventory.ErrVariantNotFound
		}
		return 0, 0, fmt.Errorf("failed to release stock: %w", err)
	}
	return before, after, nil
}

func (r *PGRepository) ReservationsByOrder(ctx context.Context, orderID string) ([]model.Reservation, error) {
	var items []model.Reservation
	err := r.DB.SelectContext(ctx, &items, `
        SELECT * FROM inventory_reservations WHERE order_id = $1
    `, orderID)
	return items, err
}

func (r *PGRepository) ExpiredReservations(ctx context.Context, now time.Time) ([]model.Reservation, error) {
	var items []model.Reservation
	err := r.DB.SelectContext(ctx, &items, `
        SELECT * FROM inventory_reservations WHERE reserved_until < $1 ORDER BY order_id
    `, now)
	return items, err
}

// RetireAndRelease is the cancellation path for a single hold. Deleting the
// row and returning the stock happen in one transaction; if another path
// deleted the row first this is a no-op.
func (r *PGRepository) RetireAndRelease(ctx context.Context, reservationID string) (*dto.ReleasedRow, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var variantID string
	var qty int
	err = tx.QueryRowContext(ctx, `
        DELETE FROM inventory_reservations WHERE id = $1
        RETURNING product_variant_id, qty
    `, reservationID).Scan(&variantID, &qty)
	if errors.Is(err, sql.ErrNoRows) {
		// Already retired by a concurrent confirm, cancel or sweep.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete reservation: %w", err)
	}

	before, after, err := releaseStock(ctx, tx, variantID, qty)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &dto.ReleasedRow{
		ReservationID: reservationID,
		VariantID:     variantID,
		Qty:           qty,
		Before:        before,
		After:         after,
	}, nil
}

func (r *PGRepository) Retire(ctx context.Context, reservationID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
        DELETE FROM inventory_reservations WHERE id = $1
    `, reservationID)
	if err != nil {
		return false, fmt.Errorf("failed to delete reservation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
