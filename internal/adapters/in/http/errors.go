package http

import (
	"errors"
	"net/http"

	"forwarding/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the uniform error envelope of the API.
type errorResponse struct {
	Error  string `json:"error"`
	Source string `json:"source"`
	Code   int    `json:"code"`
}

// writeError maps the application error taxonomy onto HTTP status codes and
// writes the envelope. Unrecognized errors become opaque 500s so internals
// never leak to clients.
func writeError(ctx echo.Context, err error) error {
	code := statusCodeFor(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	return ctx.JSON(code, errorResponse{
		Error:  message,
		Source: "forwarding",
		Code:   code,
	})
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrTransientStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
