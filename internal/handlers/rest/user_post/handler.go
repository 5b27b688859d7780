package user_post

import (
	"encoding/json"
	"errors"
	"net/http"

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

// ServeHTTP creates the user on first sign-in. A repeated sign-in answers 200
// with inserted=false instead of failing.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var userDTO dto.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	userEntity, inserted, err := h.service.SignIn(r.Context(), dto.ToUserModify(userDTO))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingRequiredFields),
			errors.Is(err, user.ErrInvalidEmail):
			response.Error(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrConflict):
			response.Error(w, h.log, http.StatusConflict, err.Error())
		default:
			response.InternalError(w, h.log, err)
		}
		return
	}

	status, message := http.StatusOK, "user already exists"
	if inserted {
		status, message = http.StatusCreated, "user created"
	}
	response.JSON(w, h.log, status, dto.SignInResponse{
		Message:  message,
		Inserted: inserted,
		User:     dto.FromUser(userEntity),
	})
}
