package cmd

import (
	"log/slog"

	httpin "freelance/internal/adapters/in/http"
	"freelance/internal/adapters/out/postgres"
	"freelance/internal/adapters/out/postgres/partyrepo"
	"freelance/internal/adapters/out/realtime"
	"freelance/internal/core/application/listeners"
	"freelance/internal/core/application/usecases/commands"
	"freelance/internal/core/application/usecases/queries"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/ports"
	"freelance/internal/jobs"
	"freelance/internal/pkg/eventbus"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	bus         *eventbus.Bus[kernel.Event]
	hub         *realtime.Hub
	codeStore   ports.CodeStore
	emailSender ports.EmailSender
	clock       kernel.Clock
	logger      *slog.Logger
}

// NewCompositionRoot wires the adapters together and subscribes the
// notification, email and realtime listeners to the event bus.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	codeStore ports.CodeStore,
	emailSender ports.EmailSender,
	logger *slog.Logger,
) *CompositionRoot {
	c := &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:         eventbus.New[kernel.Event](logger),
		hub:         realtime.NewHub(logger),
		codeStore:   codeStore,
		emailSender: emailSender,
		clock:       kernel.SystemClock{},
		logger:      logger,
	}

	listeners.NewNotificationListener(c.notificationListenerUoWFactory(), c.hub, c.clock, logger).Register(c.bus)
	listeners.NewEmailListener(partyrepo.NewGormPartyRepository(gormDB), emailSender, logger).Register(c.bus)
	listeners.NewRealtimeListener(c.hub).Register(c.bus)

	return c
}

func (c *CompositionRoot) Hub() *realtime.Hub {
	return c.hub
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return commands.OrderUoWFactoryFunc(func() commands.OrderUoW {
		return c.uowFactory.New()
	})
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.UoWFactory {
	return commands.UoWFactoryFunc(func() commands.UoW {
		return c.uowFactory.New()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return commands.NotificationUoWFactoryFunc(func() commands.NotificationUoW {
		return c.uowFactory.New()
	})
}

func (c *CompositionRoot) reviewUoWFactory() commands.ReviewUoWFactory {
	return commands.ReviewUoWFactoryFunc(func() commands.ReviewUoW {
		return c.uowFactory.New()
	})
}

func (c *CompositionRoot) notificationListenerUoWFactory() listeners.NotificationUoWFactory {
	return listeners.NotificationUoWFactoryFunc(func() listeners.NotificationUoW {
		return c.uowFactory.New()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateOrderActivityCommandHandler() commands.OrderActivityCommandHandler {
	return commands.NewOrderActivityCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSoftDeleteOrderCommandHandler() commands.SoftDeleteOrderCommandHandler {
	return commands.NewSoftDeleteOrderCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateAssignPerformerCommandHandler() commands.AssignPerformerCommandHandler {
	return commands.NewAssignPerformerCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateRefusePerformerCommandHandler() commands.RefusePerformerCommandHandler {
	return commands.NewRefusePerformerCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateMarkTaskDoneCommandHandler() commands.MarkTaskDoneCommandHandler {
	return commands.NewMarkTaskDoneCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateConfirmOrderDoneCommandHandler() commands.ConfirmOrderDoneCommandHandler {
	return commands.NewConfirmOrderDoneCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateRequestCorrectionCommandHandler() commands.RequestCorrectionCommandHandler {
	return commands.NewRequestCorrectionCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateCreateReplyCommandHandler() commands.CreateReplyCommandHandler {
	return commands.NewCreateReplyCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateDeleteReplyCommandHandler() commands.DeleteReplyCommandHandler {
	return commands.NewDeleteReplyCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateGetMessagesCommandHandler() commands.GetMessagesCommandHandler {
	return commands.NewGetMessagesCommandHandler(c.lifecycleUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	return commands.NewSendMessageCommandHandler(c.lifecycleUoWFactory(), c.bus, c.clock)
}

func (c *CompositionRoot) CreateSoftDeleteChatCommandHandler() commands.SoftDeleteChatCommandHandler {
	return commands.NewSoftDeleteChatCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreatePurgeReadNotificationsCommandHandler() commands.PurgeReadNotificationsCommandHandler {
	return commands.NewPurgeReadNotificationsCommandHandler(c.notificationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateReviewCommandHandler() commands.CreateReviewCommandHandler {
	return commands.NewCreateReviewCommandHandler(c.reviewUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRequestVerificationCodeHandler() commands.RequestVerificationCodeHandler {
	return commands.NewRequestVerificationCodeHandler(c.codeStore, c.emailSender, c.config.VerificationCodeTTL)
}

func (c *CompositionRoot) CreateConfirmVerificationCodeHandler() commands.ConfirmVerificationCodeHandler {
	return commands.NewConfirmVerificationCodeHandler(c.codeStore)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPerformerOrdersQueryHandler() queries.ListPerformerOrdersQueryHandler {
	return queries.NewListPerformerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListChatsQueryHandler() queries.ListChatsQueryHandler {
	return queries.NewListChatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountUnreadQueryHandler() queries.CountUnreadQueryHandler {
	return queries.NewCountUnreadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPerformerReviewsQueryHandler() queries.ListPerformerReviewsQueryHandler {
	return queries.NewListPerformerReviewsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		OrderActivity:        c.CreateOrderActivityCommandHandler(),
		SoftDeleteOrder:      c.CreateSoftDeleteOrderCommandHandler(),
		AssignPerformer:      c.CreateAssignPerformerCommandHandler(),
		RefusePerformer:      c.CreateRefusePerformerCommandHandler(),
		MarkTaskDone:         c.CreateMarkTaskDoneCommandHandler(),
		ConfirmOrderDone:     c.CreateConfirmOrderDoneCommandHandler(),
		RequestCorrection:    c.CreateRequestCorrectionCommandHandler(),
		CreateReply:          c.CreateCreateReplyCommandHandler(),
		DeleteReply:          c.CreateDeleteReplyCommandHandler(),
		GetMessages:          c.CreateGetMessagesCommandHandler(),
		SendMessage:          c.CreateSendMessageCommandHandler(),
		SoftDeleteChat:       c.CreateSoftDeleteChatCommandHandler(),
		MarkNotificationRead: c.CreateMarkNotificationReadCommandHandler(),
		CreateReview:         c.CreateCreateReviewCommandHandler(),
		RequestCode:          c.CreateRequestVerificationCodeHandler(),
		ConfirmCode:          c.CreateConfirmVerificationCodeHandler(),

		ListCustomerOrders:   c.CreateListCustomerOrdersQueryHandler(),
		ListPerformerOrders:  c.CreateListPerformerOrdersQueryHandler(),
		ListChats:            c.CreateListChatsQueryHandler(),
		CountUnread:          c.CreateCountUnreadQueryHandler(),
		ListNotifications:    c.CreateListNotificationsQueryHandler(),
		ListPerformerReviews: c.CreateListPerformerReviewsQueryHandler(),
	}
	auth := httpin.NewAuthenticator(c.config.JWTSecret, c.logger)
	return httpin.NewServer(handlers, auth, c.hub, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.codeStore,
		c.CreatePurgeReadNotificationsCommandHandler(),
		c.config.NotificationRetention,
		c.logger,
	)
}
