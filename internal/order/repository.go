package order

import (
	"context"
	"time"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/dto"
)

type Repository interface {
	// CreateWithItems persists the order and its line items in one transaction.
	CreateWithItems(ctx context.Context, order *model.Order) error
	// Delete removes an order and its items; used to undo a checkout whose
	// reservation step failed.
	Delete(ctx context.Context, orderID string) error

	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]model.Order, error)
	List(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error)

	// ListExpiredPending returns PENDING orders whose reserved_until has
	// passed, regardless of whether any reservation rows survive. A checkout
	// that crashed before writing its rows is only reachable this way.
	ListExpiredPending(ctx context.Context, now time.Time) ([]model.Order, error)

	// UpdateStatus writes the transition only if the row still holds the
	// status the caller observed, and clears reserved_until. Returns false
	// when the order moved concurrently.
	UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error)
}
