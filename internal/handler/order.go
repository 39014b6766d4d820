package handler

import (
	"errors"
	"net/http"

	"github.com/mbahwiryo/storefront/internal/middleware"
	"github.com/mbahwiryo/storefront/internal/model"
)

// OrderEmailResponse is returned when both order emails were sent
type OrderEmailResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	CustomerEmailID string `json:"customerEmailId"`
	AdminEmailID    string `json:"adminEmailId"`
}

// SendConfirmationEmail handles POST /api/send-confirmation-email
func (h *Handler) SendConfirmationEmail(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequestID(middleware.GetRequestID(r.Context()))

	var order model.Order
	if err := readJSON(w, r, &order); err != nil {
		log.Error().Err(err).Msg("failed to decode order")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result, err := h.notifier.NotifyOrder(r.Context(), &order)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.Is(err, model.ErrCustomerEmailRequired):
			writeError(w, http.StatusBadRequest, "customer email required")
		case errors.As(err, &verr):
			writeErrorWithDetails(w, http.StatusBadRequest, "invalid order", map[string]interface{}{
				"fields": verr.Fields,
			})
		default:
			log.Error().Err(err).Str("order_ref", order.Reference).Msg("order notification error")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	if !result.OK() {
		writeErrorWithDetails(w, http.StatusInternalServerError, "send failed", result)
		return
	}

	writeJSON(w, http.StatusOK, OrderEmailResponse{
		Success:         true,
		Message:         "Emails sent successfully",
		CustomerEmailID: result.CustomerResult.MessageID,
		AdminEmailID:    result.AdminResult.MessageID,
	})
}
