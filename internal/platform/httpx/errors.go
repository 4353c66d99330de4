// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusNotFound:            "Resource not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusUnprocessableEntity: "Unprocessable entity",
	http.StatusInternalServerError: "Internal server error",
}

// StatusFor maps domain errors to the status code reported to clients.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, shared.ErrReferenced),
		errors.Is(err, shared.ErrDuplicate),
		errors.Is(err, shared.ErrUnprocessable),
		errors.Is(err, shared.ErrIdempotencyConflict):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps domain errors to the failure envelope.
func RespondError(w http.ResponseWriter, err error) {
	Fail(w, StatusFor(err))
}

// Fail writes {success:false, error:<status>, message:<text>}.
func Fail(w http.ResponseWriter, status int) {
	message, ok := statusMessages[status]
	if !ok {
		message = http.StatusText(status)
	}
	JSON(w, status, Failure{Success: false, Error: status, Message: message})
}

// NotFoundHandler answers unknown routes with the 404 envelope.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Fail(w, http.StatusNotFound)
	}
}

// MethodNotAllowedHandler answers unsupported verbs with the 405 envelope.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Fail(w, http.StatusMethodNotAllowed)
	}
}
