package http

import (
	"net/http"

	"maintenance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindValidationFailed:
		return http.StatusBadRequest
	case errs.KindInvalidState:
		return http.StatusUnprocessableEntity
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error. Unclassified errors are logged and their text
// is not sent to the caller.
func (s *Server) fail(ctx echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		if kind == errs.KindUnknown {
			message = http.StatusText(status)
		}
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Kind:    kind.String(),
		Message: message,
	})
}

func reject(ctx echo.Context, status int, kind errs.Kind, message string) error {
	return ctx.JSON(status, Error{
		Code:    status,
		Kind:    kind.String(),
		Message: message,
	})
}
