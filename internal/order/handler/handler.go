package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/inventory"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/notifier"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/ratelimit"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/server"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc        order.UseCase
	limiter   ratelimit.Limiter
	shopPhone string
	logger    *zap.Logger
}

func NewOrderHandler(uc order.UseCase, limiter ratelimit.Limiter, shopPhone string, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		uc:        uc,
		limiter:   limiter,
		shopPhone: shopPhone,
		logger:    log,
	}
}

type checkoutResponse struct {
	Success     bool         `json:"success"`
	Order       *model.Order `json:"order"`
	WhatsAppURL string       `json:"whatsapp_url"`
}

// POST /api/orders
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientKey(r)) {
		server.RespondError(w, http.StatusTooManyRequests, "rate_limited", "too many checkout attempts, try again shortly")
		return
	}

	var input dto.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		server.RespondError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	ord, err := h.uc.Checkout(r.Context(), &input)
	if err != nil {
		h.respondCheckoutError(w, err)
		return
	}

	// The link points at the shop's number: the customer forwards the order
	// message there, a human confirms it.
	whatsappURL := ""
	if ord.WhatsAppMessage != nil {
		whatsappURL = notifier.WhatsAppURL(h.shopPhone, *ord.WhatsAppMessage)
	}
	server.RespondJSON(w, http.StatusCreated, checkoutResponse{
		Success:     true,
		Order:       ord,
		WhatsAppURL: whatsappURL,
	})
}

func (h *OrderHandler) respondCheckoutError(w http.ResponseWriter, err error) {
	var insufficient *inventory.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		server.RespondError(w, http.StatusConflict, "insufficient_stock", insufficient.Error())
	case errors.Is(err, inventory.ErrVariantNotFound):
		server.RespondError(w, http.StatusNotFound, "variant_not_found", err.Error())
	case errors.Is(err, order.ErrMissingCustomer),
		errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidQuantity):
		server.RespondError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		h.logger.Error("checkout failed", zap.Error(err))
		server.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to create order")
	}
}

// GET /api/orders?phone=…|order_number=…
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	if orderNumber := r.URL.Query().Get("order_number"); orderNumber != "" {
		ord, err := h.uc.GetOrderByNumber(r.Context(), orderNumber)
		if err != nil {
			h.respondLookupError(w, err)
			return
		}
		server.RespondJSON(w, http.StatusOK, map[string]interface{}{"order": ord})
		return
	}

	if phone := r.URL.Query().Get("phone"); phone != "" {
		orders, err := h.uc.ListOrdersByPhone(r.Context(), phone)
		if err != nil {
			h.respondLookupError(w, err)
			return
		}
		server.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
		return
	}

	server.RespondError(w, http.StatusBadRequest, "missing_parameter", "provide phone or order_number parameter")
}

// GET /api/orders/{order_id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ord, err := h.uc.GetOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		h.respondLookupError(w, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]interface{}{"order": ord})
}

// GET /api/admin/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	f := &dto.OrderFilters{
		Status:   r.URL.Query().Get("status"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 50),
	}

	orders, total, err := h.uc.ListOrders(r.Context(), f)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		server.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}
	server.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// PATCH /api/admin/orders/{order_id}/status
func (h *OrderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.RespondError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}

	target := model.OrderStatus(req.Status)
	if !target.IsValid() {
		server.RespondError(w, http.StatusBadRequest, "invalid_status",
			fmt.Sprintf("invalid status %q, must be one of %v", req.Status, model.ValidStatuses()))
		return
	}

	ord, err := h.uc.SetStatus(r.Context(), chi.URLParam(r, "order_id"), target)
	if err != nil {
		var invalid *order.InvalidTransitionError
		switch {
		case errors.As(err, &invalid):
			server.RespondError(w, http.StatusConflict, "invalid_transition", invalid.Error())
		case errors.Is(err, order.ErrOrderNotFound):
			server.RespondError(w, http.StatusNotFound, "order_not_found", err.Error())
		default:
			h.logger.Error("status update failed", zap.Error(err))
			server.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to update order status")
		}
		return
	}

	server.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   ord,
		"message": fmt.Sprintf("Order status updated to %s", target),
	})
}

func (h *OrderHandler) respondLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, order.ErrOrderNotFound) {
		server.RespondError(w, http.StatusNotFound, "order_not_found", err.Error())
		return
	}
	h.logger.Error("order lookup failed", zap.Error(err))
	server.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch orders")
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SweepHandler exposes the reservation sweep as a maintenance endpoint for
// the external scheduler.
type SweepHandler struct {
	uc         order.UseCase
	cronSecret string
	logger     *zap.Logger
}

func NewSweepHandler(uc order.UseCase, cronSecret string, log *zap.Logger) *SweepHandler {
	return &SweepHandler{uc: uc, cronSecret: cronSecret, logger: log}
}

// POST /api/cron/cleanup-reservations
func (h *SweepHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	// Enforced only when a secret is configured, same as the scheduler side.
	if h.cronSecret != "" && r.Header.Get("Authorization") != "Bearer "+h.cronSecret {
		server.RespondError(w, http.StatusUnauthorized, "unauthorized", "invalid cron secret")
		return
	}

	result, err := h.uc.SweepExpired(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("sweep failed", zap.Error(err))
		server.RespondError(w, http.StatusInternalServerError, "internal_error", "cleanup failed")
		return
	}

	server.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":               true,
		"timestamp":             time.Now().UTC().Format(time.RFC3339),
		"reservations_released": result.Released,
		"orders_cancelled":      result.OrdersCancelled,
	})
}
