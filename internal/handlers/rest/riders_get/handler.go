package riders_get

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"parcel-service/internal/entities"
	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/service/rider"
)

// Listing selects which rider queue the route serves.
type Listing int

const (
	Pending Listing = iota
	Active
	ByDistrict
)

type Handler struct {
	log     handlerLogger
	service Service
	listing Listing
}

func New(log handlerLogger, service Service, listing Listing) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
		listing: listing,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		riders []entities.Rider
		err    error
	)
	switch h.listing {
	case Active:
		riders, err = h.service.ListActive(r.Context(), r.URL.Query().Get("name"))
	case ByDistrict:
		riders, err = h.service.ListByDistrict(r.Context(), mux.Vars(r)["district"])
	default:
		riders, err = h.service.ListPending(r.Context())
	}
	if err != nil {
		if errors.Is(err, rider.ErrInvalidDistrict) {
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
			return
		}
		response.InternalError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromRiders(riders))
}
