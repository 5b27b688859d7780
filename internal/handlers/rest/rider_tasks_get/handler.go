package rider_tasks_get

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"parcel-service/internal/entities"
	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/service/rider"
)

type Kind int

const (
	Pending Kind = iota
	Completed
)

type Handler struct {
	log     handlerLogger
	service Service
	kind    Kind
}

func New(log handlerLogger, service Service, kind Kind) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
		kind:    kind,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	var (
		parcels []entities.Parcel
		err     error
	)
	if h.kind == Completed {
		parcels, err = h.service.CompletedTasks(r.Context(), email)
	} else {
		parcels, err = h.service.PendingTasks(r.Context(), email)
	}
	if err != nil {
		if errors.Is(err, rider.ErrInvalidEmail) {
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
			return
		}
		response.InternalError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromParcels(parcels))
}
