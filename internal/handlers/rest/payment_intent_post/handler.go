package payment_intent_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/service/payment"
	"parcel-service/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var intentDTO dto.PaymentIntentCreate
	if err := json.NewDecoder(r.Body).Decode(&intentDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	intent, err := h.service.CreateIntent(r.Context(), intentDTO.Amount)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidAmount):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, payment.ErrGatewayUnavailable):
			h.log.Warn("payment intent failed", logger.NewField("error", err))
			response.Error(w, h.log, http.StatusBadGateway, "payment gateway unavailable")
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromPaymentIntent(intent))
}
