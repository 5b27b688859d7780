package parcel_assign_rider_patch

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/pkg/middlewares/access"
	"parcel-service/internal/pkg/statemachine"
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

// ServeHTTP assigns the rider named by rider_id. The rider's name and email are
// taken from the rider record, the body only carries the id.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := access.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, h.log, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid parcel id")
		return
	}

	var assignDTO dto.RiderAssign
	if err := json.NewDecoder(r.Body).Decode(&assignDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.AssignRider(r.Context(), id, assignDTO.RiderID, identity.Email)
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrInvalidParcelID),
			errors.Is(err, parcel.ErrInvalidRiderID):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, parcel.ErrParcelNotFound),
			errors.Is(err, parcel.ErrRiderNotFound):
			response.Error(w, h.log, http.StatusNotFound, err.Error())
		case errors.Is(err, parcel.ErrParcelNotPaid),
			errors.Is(err, parcel.ErrRiderNotActive):
			response.Error(w, h.log, http.StatusConflict, err.Error())
		case errors.Is(err, statemachine.ErrInvalidTransition):
			response.InvalidTransition(w, h.log, err)
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromAssignment(result))
}
