package http

import (
	"net/http"

	"freelance/internal/core/application/usecases/commands"
	"freelance/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications[?unread=true].
func (s *Server) ListNotifications(c echo.Context) error {
	caller, err := CallerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	var unreadOnly bool
	if err = echo.QueryParamsBinder(c).Bool("unread", &unreadOnly).BindError(); err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListNotificationsQuery(caller, unreadOnly)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toNotificationResponses(views))
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	caller, notificationID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewMarkNotificationReadCommand(caller, notificationID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.MarkNotificationRead.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestVerificationCode handles POST /api/v1/verification/codes.
func (s *Server) RequestVerificationCode(c echo.Context) error {
	var req VerificationCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.RequestCode.Handle(c.Request().Context(), req.Email); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

// ConfirmVerificationCode handles POST /api/v1/verification/confirmations.
func (s *Server) ConfirmVerificationCode(c echo.Context) error {
	var req ConfirmVerificationCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.ConfirmCode.Handle(c.Request().Context(), req.Email, req.Code); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
