package parcel_delete

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
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

	if err := h.service.DeleteParcel(r.Context(), id, identity.Email); err != nil {
		switch {
		case errors.Is(err, parcel.ErrInvalidParcelID):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, parcel.ErrParcelNotFound):
			response.Error(w, h.log, http.StatusNotFound, "parcel not found")
		case errors.Is(err, parcel.ErrForbidden):
			response.Error(w, h.log, http.StatusForbidden, err.Error())
		case errors.Is(err, parcel.ErrParcelHasPayments):
			response.Error(w, h.log, http.StatusConflict, err.Error())
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.DeletedResponse{Deleted: true})
}
