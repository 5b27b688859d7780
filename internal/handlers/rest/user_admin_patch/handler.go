package user_admin_patch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"parcel-service/internal/handlers/rest/dto"
	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/service/user"
)

// Mode selects whether the route grants or revokes the admin role.
type Mode int

const (
	Grant Mode = iota
	Revoke
)

type Handler struct {
	log     handlerLogger
	service Service
	mode    Mode
}

func New(log handlerLogger, service Service, mode Mode) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
		mode:    mode,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid user id")
		return
	}

	apply := h.service.GrantAdmin
	if h.mode == Revoke {
		apply = h.service.RevokeAdmin
	}

	userEntity, err := apply(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidUserID):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrUserNotFound):
			response.Error(w, h.log, http.StatusNotFound, err.Error())
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromUser(userEntity))
}
