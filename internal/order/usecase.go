package order

import (
	"context"
	"time"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/dto"
)

type UseCase interface {
	// Checkout creates a PENDING order with one reservation per line item.
	// All-or-nothing: on InsufficientStock no order and no holds remain.
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Order, error)

	// SetStatus drives one transition of the order state machine, running the
	// bound inventory effect and notifying the customer best-effort.
	SetStatus(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error)

	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	ListOrdersByPhone(ctx context.Context, phone string) ([]model.Order, error)
	ListOrders(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error)

	// SweepExpired retires every reservation past its expiry and cancels
	// owning orders still PENDING. Idempotent and safe to run concurrently
	// with explicit confirms and cancels.
	SweepExpired(ctx context.Context, now time.Time) (*dto.SweepResult, error)
}

// StatusNotifier produces the customer-facing message for a status change.
// Failures are logged by the caller and never block the transition.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, order *model.Order, oldStatus, newStatus model.OrderStatus) error
}
