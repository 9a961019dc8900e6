package http

import (
	"net/http"

	"freelance/internal/adapters/out/realtime"
	"freelance/internal/core/application/listeners"
	"freelance/internal/core/application/usecases/queries"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Subscribe handles GET /api/v1/ws. The connection receives the caller's
// notifications and the messages of every chat they take part in at
// connect time.
func (s *Server) Subscribe(c echo.Context) error {
	caller, err := CallerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}

	topics := []string{listeners.NotificationsTopic(caller.AccountID())}
	if !caller.IsAdministrator() {
		query, err := queries.NewListChatsQuery(caller)
		if err != nil {
			return s.fail(c, err)
		}
		chats, err := s.handlers.ListChats.Handle(c.Request().Context(), query)
		if err != nil {
			return s.fail(c, err)
		}
		for _, ch := range chats {
			topics = append(topics, listeners.ChatTopic(ch.ID))
		}
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}

	client := realtime.NewClient(s.hub, conn, caller.AccountID().Int64())
	s.hub.Register(client, topics...)

	go client.WritePump()
	go client.ReadPump()

	s.logger.InfoContext(c.Request().Context(), "websocket connected",
		"account_id", caller.AccountID(), "topics", len(topics))
	return nil
}
