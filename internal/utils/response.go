package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
)

const maxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, MessageBody{Message: message})
}

// WriteError maps a domain error onto its HTTP status. Internal causes are
// logged and never sent to the client.
func WriteError(w http.ResponseWriter, log *logger.Logger, err error) {
	status, body := ErrorResponse(err)
	if status == http.StatusInternalServerError {
		log.Error("API", fmt.Sprintf("Request failed: %v", err))
	}
	if encErr := WriteJSON(w, status, body); encErr != nil {
		log.Error("API", fmt.Sprintf("Failed to encode error response: %v", encErr))
	}
}

func ErrorResponse(err error) (int, ErrorBody) {
	var (
		validationErr   domain.ValidationError
		unauthorizedErr domain.UnauthorizedError
		forbiddenErr    domain.ForbiddenError
		notFoundErr     domain.NotFoundError
		conflictErr     domain.ConflictError
		internalErr     domain.InternalError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ErrorBody{Message: validationErr.Error(), Errors: validationErr.Errors}
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized, ErrorBody{Message: unauthorizedErr.Error()}
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden, ErrorBody{Message: forbiddenErr.Error()}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, ErrorBody{Message: notFoundErr.Error()}
	case errors.As(err, &conflictErr):
		return http.StatusConflict, ErrorBody{Message: conflictErr.Error()}
	case errors.As(err, &internalErr):
		return http.StatusInternalServerError, ErrorBody{Message: internalErr.PublicMessage()}
	default:
		return http.StatusInternalServerError, ErrorBody{Message: "Internal server error"}
	}
}

// DecodeJSON reads a single JSON object from the request body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.ValidationError{Msg: "Invalid request body", Err: err}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return domain.ValidationError{Msg: "Request body must contain a single JSON object"}
	}
	return nil
}
