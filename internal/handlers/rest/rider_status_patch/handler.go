package rider_status_patch

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

type Action int

const (
	Approve Action = iota
	Deactivate
)

type Handler struct {
	log     handlerLogger
	service Service
	action  Action
}

func New(log handlerLogger, service Service, action Action) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
		action:  action,
	}
}

// ServeHTTP changes the rider status and the linked user role together. The
// body reports both writes, which always succeed or fail as one.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid rider id")
		return
	}

	apply := h.service.Approve
	if h.action == Deactivate {
		apply = h.service.Deactivate
	}

	result, err := apply(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, rider.ErrInvalidRiderID):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, rider.ErrRiderNotFound),
			errors.Is(err, rider.ErrUserNotFound):
			response.Error(w, h.log, http.StatusNotFound, err.Error())
		case errors.Is(err, statemachine.ErrInvalidTransition):
			response.InvalidTransition(w, h.log, err)
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromRiderTransition(result))
}
