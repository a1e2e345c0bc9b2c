package offer

import (
	"context"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
)

type Repository interface {
	// GetActiveByCode returns the active offer whose validity window has
	// started. ErrOfferNotFound when no such code exists.
	GetActiveByCode(ctx context.Context, code string) (*model.Offer, error)
}
