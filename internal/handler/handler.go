package handler

import (
	"errors"
	"net/http"

	"hrms/internal/service"
)

// statusFor maps the service error taxonomy to HTTP status codes: validation
// 400, not-found 404, business-rule conflicts 409, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
