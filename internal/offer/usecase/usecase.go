package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer/dto"
	"go.uber.org/zap"
)

type offerUseCase struct {
	repo   offer.Repository
	logger *zap.Logger
}

func NewOfferUseCase(repo offer.Repository, log *zap.Logger) offer.UseCase {
	return &offerUseCase{repo: repo, logger: log}
}

func (uc *offerUseCase) Validate(ctx context.Context, code string, subtotal float64) (*dto.ValidationResult, error) {
	o, err := uc.repo.GetActiveByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}

	if o.ValidTill != nil && o.ValidTill.Before(time.Now()) {
		return nil, offer.ErrOfferExpired
	}
	if o.MinOrderValue != nil && subtotal < *o.MinOrderValue {
		return nil, offer.ErrMinOrderNotMet
	}

	var discount float64
	switch o.DiscountType {
	case "percentage":
		discount = math.Round(subtotal * o.DiscountValue / 100)
	case "fixed":
		discount = math.Min(o.DiscountValue, subtotal)
	}
	if o.MaxDiscount != nil && discount > *o.MaxDiscount {
		discount = *o.MaxDiscount
	}

	finalTotal := math.Max(0, subtotal-discount)

	return &dto.ValidationResult{
		Valid: true,
		Offer: dto.OfferSummary{
			ID:            o.ID,
			Title:         o.Title,
			Code:          o.Code,
			DiscountType:  o.DiscountType,
			DiscountValue: o.DiscountValue,
		},
		Discount:   discount,
		Subtotal:   subtotal,
		FinalTotal: finalTotal,
	}, nil
}
