package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/product/repository"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/server"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewProductHandler(uc product.UseCase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

// GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	f := &dto.ProductFilters{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 24),
	}

	products, total, err := h.uc.ListProducts(r.Context(), f)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		server.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	server.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
	})
}

// GET /api/products/{product_id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			server.RespondError(w, http.StatusNotFound, "product_not_found", err.Error())
			return
		}
		h.logger.Error("failed to get product", zap.Error(err))
		server.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]interface{}{"product": p})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
