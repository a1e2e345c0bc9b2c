package sweeper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order"
	"go.uber.org/zap"
)

const lockKey = "lock:reservation-sweep"

// LockClient is the slice of the redis client the sweeper needs.
type LockClient interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// Sweeper periodically retires expired reservations. Multiple replicas may
// run it; a redis lock keeps the periodic pass single-flight, and the sweep
// itself is idempotent so a lost lock is harmless.
type Sweeper struct {
	orders   order.UseCase
	locks    LockClient
	interval time.Duration
	logger   *zap.Logger
}

func New(orders order.UseCase, locks LockClient, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		orders:   orders,
		locks:    locks,
		interval: interval,
		logger:   log,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reservation sweeper started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reservation sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	token := uuid.NewString()
	if s.locks != nil {
		acquired, err := s.locks.AcquireLock(ctx, lockKey, token, s.interval)
		if err != nil {
			// Redis being down must not stop cleanup; the sweep tolerates
			// concurrent runs.
			s.logger.Warn("sweep lock unavailable, sweeping anyway", zap.Error(err))
		} else if !acquired {
			s.logger.Debug("sweep lock held by another replica, skipping")
			return
		} else {
			defer func() {
				if err := s.locks.ReleaseLock(ctx, lockKey, token); err != nil {
					s.logger.Warn("failed to release sweep lock", zap.Error(err))
				}
			}()
		}
	}

	result, err := s.orders.SweepExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("reservation sweep failed", zap.Error(err))
		return
	}
	if result.Released > 0 || result.OrdersCancelled > 0 {
		s.logger.Info("reservation sweep completed",
			zap.Int("reservations_released", result.Released),
			zap.Int("orders_cancelled", result.OrdersCancelled),
		)
	}
}
