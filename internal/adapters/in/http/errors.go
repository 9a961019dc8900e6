package http

import (
	"errors"
	"net/http"

	"freelance/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// statusOf maps a domain error to its HTTP status. Unknown errors are 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectAlreadyExists), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState), errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorResponse. Access denials and internal failures
// get a generic message; the latter are logged in full.
func (s *Server) fail(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: validationErrs.Error(),
			Field:   validationErrs[0].Field(),
		})
	}

	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: errs.ErrValueIsInvalid.Error(),
			Field:   bindErr.Field,
		})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, ErrorResponse{Code: httpErr.Code, Message: http.StatusText(httpErr.Code)})
	}

	status := statusOf(err)
	resp := ErrorResponse{Code: status, Message: err.Error()}
	switch status {
	case http.StatusForbidden:
		resp.Message = errs.ErrAccessDenied.Error()
	case http.StatusInternalServerError:
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		resp.Message = "internal server error"
	case http.StatusBadRequest:
		resp.Field = errs.ParamOf(err)
	}
	return c.JSON(status, resp)
}
