package order

import (
	"errors"
	"fmt"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrNoItems         = errors.New("order has no line items")
	ErrMissingCustomer = errors.New("customer_name and customer_phone are required")
	ErrInvalidQuantity = errors.New("line item quantity must be a positive integer")
)

// InvalidTransitionError reports the order's actual current status so the
// operator understands why the target was rejected.
type InvalidTransitionError struct {
	Current model.OrderStatus
	Target  model.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.Current, e.Target)
}
