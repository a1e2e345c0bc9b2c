package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/offer/dto"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/server"
	"go.uber.org/zap"
)

type OfferHandler struct {
	uc     offer.UseCase
	logger *zap.Logger
}

func NewOfferHandler(uc offer.UseCase, log *zap.Logger) *OfferHandler {
	return &OfferHandler{uc: uc, logger: log}
}

// POST /api/offers/validate
func (h *OfferHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var input dto.ValidateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		server.RespondError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return
	}
	if input.Code == "" {
		server.RespondError(w, http.StatusBadRequest, "invalid_input", "offer code is required")
		return
	}

	result, err := h.uc.Validate(r.Context(), input.Code, input.Subtotal)
	if err != nil {
		switch {
		case errors.Is(err, offer.ErrOfferNotFound):
			server.RespondError(w, http.StatusNotFound, "offer_not_found", "invalid or inactive offer code")
		case errors.Is(err, offer.ErrOfferExpired):
			server.RespondError(w, http.StatusBadRequest, "offer_expired", "this offer has expired")
		case errors.Is(err, offer.ErrMinOrderNotMet):
			server.RespondError(w, http.StatusBadRequest, "min_order_not_met", "order value is below the offer minimum")
		default:
			h.logger.Error("offer validation failed", zap.Error(err))
			server.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to validate offer")
		}
		return
	}

	server.RespondJSON(w, http.StatusOK, result)
}
