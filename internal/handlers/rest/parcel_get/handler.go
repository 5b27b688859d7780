package parcel_get

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
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
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid parcel id")
		return
	}

	parcelEntity, err := h.service.GetParcel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, parcel.ErrInvalidParcelID):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, parcel.ErrParcelNotFound):
			response.Error(w, h.log, http.StatusNotFound, "parcel not found")
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromParcel(parcelEntity))
}
