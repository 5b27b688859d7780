package payments_get

import (
	"errors"
	"net/http"

	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/service/payment"
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
	payments, err := h.service.History(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		if errors.Is(err, payment.ErrInvalidEmail) {
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
			return
		}
		response.InternalError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromPayments(payments))
}
