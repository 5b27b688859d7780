package parcels_assignable_get

import (
	"net/http"

	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
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
	parcels, err := h.service.ListAssignable(r.Context())
	if err != nil {
		response.InternalError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromParcels(parcels))
}
