package payment_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/pkg/middlewares/access"
	"parcel-service/internal/service/parcel"
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

// ServeHTTP records a payment made by the caller and marks the parcel paid.
// Replaying a known transaction_id answers 200 instead of 201.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := access.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, h.log, http.StatusUnauthorized, "unauthorized")
		return
	}

	var paymentDTO dto.PaymentCreate
	if err := json.NewDecoder(r.Body).Decode(&paymentDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.RecordPayment(r.Context(), dto.ToPaymentModify(paymentDTO, identity.Email))
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrMissingRequiredFields),
			errors.Is(err, parcel.ErrInvalidParcelID),
			errors.Is(err, parcel.ErrInvalidAmount),
			errors.Is(err, parcel.ErrMissingTransactionRef):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, parcel.ErrParcelNotFound):
			response.Error(w, h.log, http.StatusNotFound, "parcel not found")
		case errors.Is(err, parcel.ErrPaymentConflict):
			response.Error(w, h.log, http.StatusConflict, err.Error())
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	status := http.StatusOK
	if result.PaymentRecorded {
		status = http.StatusCreated
	}
	response.JSON(w, h.log, status, dto.FromPaymentResult(result))
}
