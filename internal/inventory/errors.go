package inventory

import (
	"errors"
	"fmt"
)

var ErrVariantNotFound = errors.New("product variant not found")

// InsufficientStockError names the first variant whose available stock could
// not cover the requested quantity, so the customer can adjust it.
type InsufficientStockError struct {
	VariantID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %s: requested=%d, available=%d",
		e.VariantID, e.Requested, e.Available)
}
