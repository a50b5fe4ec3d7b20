package http

import (
	"errors"
	"net/http"

	"github.com/lodgepole/gatehouse/internal/auth/domain"
	"github.com/lodgepole/gatehouse/internal/auth/service"
	"github.com/lodgepole/gatehouse/pkg/httpx"
	"github.com/lodgepole/gatehouse/pkg/slogx"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeServiceError translates workflow errors into the external status
// taxonomy. Anything unrecognised is a 500 whose detail goes to the log,
// never to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError

	status, message := 0, ""
	switch {
	case errors.As(err, &vErr):
		status, message = http.StatusBadRequest, "Invalid input"
	case errors.Is(err, service.ErrUserAlreadyExists):
		status, message = http.StatusConflict, "User already exists"
	case errors.Is(err, service.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, service.ErrIncorrectCredentials):
		status, message = http.StatusUnauthorized, "Incorrect credentials"
	case errors.Is(err, service.ErrMissingToken):
		status, message = http.StatusBadRequest, "Missing token"
	case errors.Is(err, service.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "Invalid token"
	default:
		slogx.FromContext(r.Context()).Error("unexpected error", "err", err)
		status, message = http.StatusInternalServerError, "Unexpected error"
	}

	httpx.WriteJSON(w, status, ErrorResponse{Error: message})
}

// writeBadRequest rejects requests whose body could not be decoded at all.
func writeBadRequest(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
}
