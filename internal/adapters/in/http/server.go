// Package http exposes the marketplace operations over echo. Every route
// except health and email verification requires a bearer token; handlers
// translate the request into a command or query and map domain errors onto
// status codes in one place (errors.go).
package http

import (
	"log/slog"
	"net/http"

	"freelance/internal/adapters/out/realtime"
	"freelance/internal/core/application/usecases/commands"
	"freelance/internal/core/application/usecases/queries"
	"freelance/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder          commands.CreateOrderCommandHandler
	OrderActivity        commands.OrderActivityCommandHandler
	SoftDeleteOrder      commands.SoftDeleteOrderCommandHandler
	AssignPerformer      commands.AssignPerformerCommandHandler
	RefusePerformer      commands.RefusePerformerCommandHandler
	MarkTaskDone         commands.MarkTaskDoneCommandHandler
	ConfirmOrderDone     commands.ConfirmOrderDoneCommandHandler
	RequestCorrection    commands.RequestCorrectionCommandHandler
	CreateReply          commands.CreateReplyCommandHandler
	DeleteReply          commands.DeleteReplyCommandHandler
	GetMessages          commands.GetMessagesCommandHandler
	SendMessage          commands.SendMessageCommandHandler
	SoftDeleteChat       commands.SoftDeleteChatCommandHandler
	MarkNotificationRead commands.MarkNotificationReadCommandHandler
	CreateReview         commands.CreateReviewCommandHandler
	RequestCode          commands.RequestVerificationCodeHandler
	ConfirmCode          commands.ConfirmVerificationCodeHandler

	// Query handlers
	ListCustomerOrders   queries.ListCustomerOrdersQueryHandler
	ListPerformerOrders  queries.ListPerformerOrdersQueryHandler
	ListChats            queries.ListChatsQueryHandler
	CountUnread          queries.CountUnreadQueryHandler
	ListNotifications    queries.ListNotificationsQueryHandler
	ListPerformerReviews queries.ListPerformerReviewsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	auth     *Authenticator
	hub      *realtime.Hub
	logger   *slog.Logger
}

func NewServer(handlers Handlers, auth *Authenticator, hub *realtime.Hub, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		auth:     auth,
		hub:      hub,
		logger:   logger.With("component", "http"),
	}
}

// RegisterRoutes mounts every route on e and installs the request validator.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	public := e.Group("/api/v1")
	public.POST("/verification/codes", s.RequestVerificationCode)
	public.POST("/verification/confirmations", s.ConfirmVerificationCode)

	api := e.Group("/api/v1", s.auth.Middleware)

	api.POST("/orders", s.CreateOrder)
	api.DELETE("/orders/:id", s.SoftDeleteOrder)
	api.POST("/orders/:id/activate", s.ActivateOrder)
	api.POST("/orders/:id/deactivate", s.DeactivateOrder)
	api.POST("/orders/:id/performer", s.AssignPerformer)
	api.DELETE("/orders/:id/performer", s.RefusePerformer)
	api.POST("/orders/:id/refusal", s.RefuseOrder)
	api.POST("/orders/:id/confirmation", s.ConfirmOrderDone)
	api.POST("/orders/:id/corrections", s.RequestCorrection)
	api.POST("/orders/:id/replies", s.CreateReply)
	api.POST("/orders/:id/reviews", s.CreateReview)
	api.GET("/customer/orders", s.ListCustomerOrders)
	api.GET("/performer/orders", s.ListPerformerOrders)

	api.DELETE("/replies/:id", s.DeleteReply)
	api.DELETE("/replies/:id/completed", s.DeleteCompletedReply)
	api.POST("/replies/:id/done", s.MarkTaskDone)

	api.GET("/chats", s.ListChats)
	api.DELETE("/chats/:id", s.SoftDeleteChat)
	api.GET("/chats/:id/messages", s.GetMessages)
	api.POST("/chats/:id/messages", s.SendMessage)
	api.GET("/chats/:id/unread", s.CountUnread)

	api.GET("/notifications", s.ListNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)

	api.GET("/performers/:id/reviews", s.ListPerformerReviews)

	api.GET("/ws", s.Subscribe)
}

// callerAndID reads the authenticated caller and the :id path parameter.
func callerAndID(c echo.Context) (kernel.Caller, kernel.ID, error) {
	caller, err := CallerFrom(c)
	if err != nil {
		return kernel.Caller{}, 0, err
	}
	id, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return kernel.Caller{}, 0, err
	}
	return caller, id, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
