package rider_delete

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/pkg/statemachine"
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

// ServeHTTP rejects a pending rider application.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid rider id")
		return
	}

	if err := h.service.Reject(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, rider.ErrInvalidRiderID):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, rider.ErrRiderNotFound):
			response.Error(w, h.log, http.StatusNotFound, err.Error())
		case errors.Is(err, statemachine.ErrInvalidTransition):
			response.InvalidTransition(w, h.log, err)
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.DeletedResponse{Deleted: true})
}
