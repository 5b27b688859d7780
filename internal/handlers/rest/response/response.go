package response

import (
	"encoding/json"
	"net/http"

	"parcel-service/internal/pkg/statemachine"
	"parcel-service/pkg/logger"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

type errorBody struct {
	Message string `json:"message"`
}

type transitionErrorBody struct {
	Message         string   `json:"message"`
	ValidNextStates []string `json:"valid_next_states"`
}

func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

func Error(w http.ResponseWriter, log errorLogger, status int, message string) {
	JSON(w, log, status, errorBody{Message: message})
}

// InternalError hides the cause from the client and logs it.
func InternalError(w http.ResponseWriter, log errorLogger, err error) {
	log.Error("request failed", logger.NewField("error", err))
	Error(w, log, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// InvalidTransition answers 422 with the states reachable from the current one.
func InvalidTransition(w http.ResponseWriter, log errorLogger, err error) {
	next, _ := statemachine.NextStates(err)
	if next == nil {
		next = []string{}
	}
	JSON(w, log, http.StatusUnprocessableEntity, transitionErrorBody{
		Message:         err.Error(),
		ValidNextStates: next,
	})
}
