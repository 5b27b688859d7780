package rider_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/pkg/middlewares/access"
	"parcel-service/internal/service/rider"
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

// ServeHTTP files a rider application for the caller's email.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := access.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, h.log, http.StatusUnauthorized, "unauthorized")
		return
	}

	var riderDTO dto.RiderCreate
	if err := json.NewDecoder(r.Body).Decode(&riderDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.Apply(r.Context(), dto.ToRiderModify(riderDTO, identity.Email))
	if err != nil {
		switch {
		case errors.Is(err, rider.ErrMissingRequiredFields),
			errors.Is(err, rider.ErrInvalidEmail),
			errors.Is(err, rider.ErrInvalidName),
			errors.Is(err, rider.ErrInvalidDistrict):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, rider.ErrConflict):
			response.Error(w, h.log, http.StatusConflict, err.Error())
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.CreatedResponse{ID: id})
}
