package user_role_get

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/service/user"
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
	role, err := h.service.GetRole(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		if errors.Is(err, user.ErrInvalidEmail) {
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
			return
		}
		response.InternalError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.RoleResponse{Role: role.String()})
}
