package users_search_get

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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	emailPart := r.URL.Query().Get("email")
	if emailPart == "" {
		response.Error(w, h.log, http.StatusBadRequest, "email query parameter is required")
		return
	}

	users, err := h.service.Search(r.Context(), emailPart)
	if err != nil {
		response.InternalError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromUsers(users))
}
