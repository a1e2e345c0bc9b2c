package product

import (
	"context"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/dto"
)

type Repository interface {
	FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error)
	GetByID(ctx context.Context, productID string) (*model.Product, error)
	GetVariantDetail(ctx context.Context, variantID string) (*dto.VariantDetail, error)
}
