package http

import (
	"net/http"

	"freelance/internal/core/application/usecases/commands"
	"freelance/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListChats handles GET /api/v1/chats.
func (s *Server) ListChats(c echo.Context) error {
	caller, err := CallerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListChatsQuery(caller)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListChats.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toChatResponses(views))
}

// GetMessages handles GET /api/v1/chats/:id/messages. Reading marks the chat
// as checked for the caller's side.
func (s *Server) GetMessages(c echo.Context) error {
	caller, chatID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewGetMessagesCommand(caller, chatID)
	if err != nil {
		return s.fail(c, err)
	}
	messages, err := s.handlers.GetMessages.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	resp := make([]MessageResponse, len(messages))
	for i, m := range messages {
		resp[i] = toMessageResponse(m)
	}
	return c.JSON(http.StatusOK, resp)
}

// SendMessage handles POST /api/v1/chats/:id/messages.
func (s *Server) SendMessage(c echo.Context) error {
	caller, chatID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req SendMessageRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSendMessageCommand(caller, chatID, req.Text)
	if err != nil {
		return s.fail(c, err)
	}
	message, err := s.handlers.SendMessage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toMessageResponse(message))
}

// CountUnread handles GET /api/v1/chats/:id/unread.
func (s *Server) CountUnread(c echo.Context) error {
	caller, chatID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewCountUnreadQuery(caller, chatID)
	if err != nil {
		return s.fail(c, err)
	}
	count, err := s.handlers.CountUnread.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

// SoftDeleteChat handles DELETE /api/v1/chats/:id.
func (s *Server) SoftDeleteChat(c echo.Context) error {
	caller, chatID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSoftDeleteChatCommand(caller, chatID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.SoftDeleteChat.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
