package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger *zap.Logger
}

func NewInventoryUseCase(repo inventory.Repository, log *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		logger: log,
	}
}

// CreateReservations holds stock line by line. Each line pairs its counter
// increment with its reservation row in a single repository transaction, so
// a crash between lines leaves only fully-recorded holds for the expiry
// sweep to retire. If a line fails, the already-committed rows are rolled
// back with compensating retirements.
func (uc *inventoryUseCase) CreateReservations(ctx context.Context, orderID string, items []dto.ReserveItem, ttl time.Duration) error {
	now := time.Now()
	inserted := make([]string, 0, len(items))

	for _, item := range items {
		res := model.Reservation{
			ID:               uuid.New().String(),
			OrderID:          orderID,
			ProductVariantID: item.VariantID,
			Qty:              item.Qty,
			ReservedUntil:    now.Add(ttl),
			CreatedAt:        now,
		}
		if err := uc.repo.ReserveWithRecord(ctx, res); err != nil {
			uc.rollback(ctx, orderID, inserted)
			return err
		}
		inserted = append(inserted, res.ID)
	}
	return nil
}

func (uc *inventoryUseCase) rollback(ctx context.Context, orderID string, reservationIDs []string) {
	for _, id := range reservationIDs {
		if _, err := uc.repo.RetireAndRelease(ctx, id); err != nil {
			// Left-over hold; the expiry sweep picks it up.
			uc.logger.Error("compensating retirement failed",
				zap.String("order_id", orderID),
				zap.String("reservation_id", id),
				zap.Error(err))
		}
	}
}

func (uc *inventoryUseCase) Confirm(ctx context.Context, orderID string) (int, error) {
	rows, err := uc.repo.ReservationsByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, res := range rows {
		ok, err := uc.repo.Retire(ctx, res.ID)
		if err != nil {
			return deleted, err
		}
		if ok {
			deleted++
		}
	}
	return deleted, nil
}

func (uc *inventoryUseCase) Cancel(ctx context.Context, orderID string) (int, error) {
	rows, err := uc.repo.ReservationsByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, res := range rows {
		row, err := uc.repo.RetireAndRelease(ctx, res.ID)
		if err != nil {
			return released, err
		}
		if row == nil {
			// Another path retired this hold first; its deletion wins.
			continue
		}
		uc.logReleased(orderID, row)
		released++
	}
	return released, nil
}

func (uc *inventoryUseCase) ExpiredReservations(ctx context.Context, now time.Time) ([]model.Reservation, error) {
	return uc.repo.ExpiredReservations(ctx, now)
}

func (uc *inventoryUseCase) RetireReservation(ctx context.Context, reservationID string, release bool) (bool, error) {
	if !release {
		return uc.repo.Retire(ctx, reservationID)
	}
	row, err := uc.repo.RetireAndRelease(ctx, reservationID)
	if err != nil {
		return false, err
	}
	if row == nil {
		return false, nil
	}
	uc.logReleased("", row)
	return true, nil
}

func (uc *inventoryUseCase) logReleased(orderID string, row *dto.ReleasedRow) {
	if row.Before >= row.Qty {
		return
	}
	// reserved_qty would have gone negative without the floor. The counters
	// and reservation rows diverged at some point; worth investigating.
	uc.logger.Warn("release floored reserved_qty at zero",
		zap.String("order_id", orderID),
		zap.String("reservation_id", row.ReservationID),
		zap.String("variant_id", row.VariantID),
		zap.Int("qty", row.Qty),
		zap.Int("reserved_before", row.Before))
}
