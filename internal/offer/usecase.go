package offer

import (
	"context"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer/dto"
)

type UseCase interface {
	// Validate is a stateless calculation: it never mutates the offer's
	// usage counters or any order state.
	Validate(ctx context.Context, code string, subtotal float64) (*dto.ValidationResult, error)
}
