package parcel_post

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

// ServeHTTP creates a parcel owned by the caller. Any creator in the body is
// ignored.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := access.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, h.log, http.StatusUnauthorized, "unauthorized")
		return
	}

	var parcelDTO dto.ParcelCreate
	if err := json.NewDecoder(r.Body).Decode(&parcelDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.CreateParcel(r.Context(), dto.ToParcelModify(parcelDTO), identity.Email)
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrMissingRequiredFields),
			errors.Is(err, parcel.ErrMissingCreator),
			errors.Is(err, parcel.ErrInvalidTitle),
			errors.Is(err, parcel.ErrInvalidParcelType),
			errors.Is(err, parcel.ErrInvalidCost),
			errors.Is(err, parcel.ErrInvalidWeight):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.CreatedResponse{ID: id})
}
