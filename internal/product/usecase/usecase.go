package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/pkg/cache"
	"go.uber.org/zap"
)

const listCacheTTL = 5 * time.Minute

type productUseCase struct {
	repo   product.Repository
	cache  *cache.Client
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, c *cache.Client, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  c,
		logger: log,
	}
}

type cachedList struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
}

func (uc *productUseCase) ListProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	key := listCacheKey(f)

	if uc.cache != nil {
		if data, err := uc.cache.GetBytes(ctx, key); err == nil {
			var cached cachedList
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached.Items, cached.Total, nil
			}
		}
	}

	items, total, err := uc.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(cachedList{Items: items, Total: total}); err == nil {
			if err := uc.cache.Set(ctx, key, data, listCacheTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache product list", zap.Error(err))
			}
		}
	}
	return items, total, nil
}

func listCacheKey(f *dto.ProductFilters) string {
	raw, _ := json.Marshal(f)
	return fmt.Sprintf("cache:products:%x", md5.Sum(raw))
}

func (uc *productUseCase) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	return uc.repo.GetByID(ctx, productID)
}
