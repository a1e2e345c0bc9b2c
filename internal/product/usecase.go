package product

import (
	"context"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/dto"
)

type UseCase interface {
	ListProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error)
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
}
