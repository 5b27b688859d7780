package parcels_get

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

// ServeHTTP lists the parcels created by ?email=, newest first. Without the
// parameter it returns every parcel; the route policy limits that to admins.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parcels, err := h.service.ListParcels(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.InternalError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromParcels(parcels))
}
