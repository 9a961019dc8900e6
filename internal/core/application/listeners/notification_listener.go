package listeners

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/notification"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/reply"
	"freelance/internal/core/ports"
)

type (
	// NotificationUoW is the transaction a notification is stored in. It is
	// never the transaction of the operation that produced the event.
	NotificationUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		NotificationRepository() ports.NotificationRepository
		PartyRepository() ports.PartyRepository
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	NotificationUoWFactoryFunc func() NotificationUoW
)

func (f NotificationUoWFactoryFunc) Create() NotificationUoW { return f() }

// NotificationPayload is the realtime representation of a notification.
// EventID identifies the lifecycle event, so a client that reconnects can drop
// pushes it has already shown.
type NotificationPayload struct {
	EventID   string `json:"eventId"`
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	OrderID   int64  `json:"orderId"`
	CreatedAt string `json:"createdAt"`
}

// NotificationListener stores one notification per lifecycle event for the
// party that did not act, then pushes it to that party's realtime topic.
type NotificationListener struct {
	uowFactory NotificationUoWFactory
	realtime   ports.RealtimePublisher
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewNotificationListener(
	uowFactory NotificationUoWFactory, realtime ports.RealtimePublisher, clock kernel.Clock, logger *slog.Logger,
) *NotificationListener {
	return &NotificationListener{
		uowFactory: uowFactory,
		realtime:   realtime,
		clock:      clock,
		logger:     logger.With("component", "notification_listener"),
	}
}

func (l *NotificationListener) Register(bus Subscriber) {
	for _, name := range []string{
		reply.EventReplyCreated,
		order.EventPerformerAssigned,
		order.EventPerformerRefused,
		order.EventWorkSubmitted,
		order.EventOrderCompleted,
		order.EventCorrectionRequested,
	} {
		bus.Subscribe(name, l.Handle)
	}
}

type notice struct {
	to      kernel.Role
	kind    notification.Type
	title   string
	message string

	// once skips the notice when the recipient already holds one of the
	// same type about the order.
	once bool
}

func noticeFor(e kernel.Event, p order.Participants) (notice, bool) {
	title := fmt.Sprintf("Order #%d: %s", p.OrderID, p.Title)
	switch ev := e.(type) {
	case reply.ReplyCreated:
		return notice{kernel.Customer, notification.Reply, title, "A performer replied to your order.", false}, true
	case order.PerformerAssigned:
		return notice{kernel.Performer, notification.Assigned, title, "You have been assigned to the order.", false}, true
	case order.PerformerRefused:
		if ev.RefusedBy == kernel.Performer {
			return notice{kernel.Customer, notification.Refused, title, "The performer refused the order.", false}, true
		}
		return notice{kernel.Performer, notification.Refused, title, "The customer refused your work on the order.", false}, true
	case order.WorkSubmitted:
		return notice{kernel.Customer, notification.Completed, title, "The performer finished the work. Please check it.", false}, true
	case order.OrderCompleted:
		return notice{kernel.Customer, notification.Completed, title, "The order is completed.", true}, true
	case order.CorrectionRequested:
		return notice{kernel.Performer, notification.Correction, title, "The customer asked for corrections.", false}, true
	default:
		return notice{}, false
	}
}

func (l *NotificationListener) Handle(ctx context.Context, e kernel.Event) error {
	p, ok := participantsOf(e)
	if !ok {
		return nil
	}
	n, ok := noticeFor(e, p)
	if !ok {
		return nil
	}

	stored, err := l.store(ctx, n, p)
	if err != nil {
		return fmt.Errorf("store %s notification for order %d: %w", n.kind, p.OrderID, err)
	}
	if stored == nil {
		return nil
	}

	payload := NotificationPayload{
		EventID:   e.EventID().String(),
		ID:        stored.ID().Int64(),
		Type:      stored.Type().String(),
		Title:     stored.Content().Title,
		Message:   stored.Content().Message,
		OrderID:   p.OrderID.Int64(),
		CreatedAt: stored.CreatedAt().UTC().Format(time.RFC3339),
	}
	if err = l.realtime.Publish(ctx, NotificationsTopic(stored.AccountID()), payload); err != nil {
		l.logger.WarnContext(ctx, "realtime notification push failed",
			"notification_id", stored.ID(),
			"error", err,
		)
	}
	return nil
}

// store persists the notification in its own transaction. Every work
// submission is stored; the customer's confirmation returns nil without error
// when a COMPLETED notification about the order already exists.
func (l *NotificationListener) store(
	ctx context.Context, n notice, p order.Participants,
) (*notification.Notification, error) {
	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	recipient, err := lookup(ctx, uow.PartyRepository(), n.to, p)
	if err != nil {
		return nil, err
	}

	notifications := uow.NotificationRepository()
	if n.once {
		exists, existsErr := notifications.ExistsAbout(ctx, recipient.accountID, n.kind, p.OrderID)
		if existsErr != nil {
			return nil, existsErr
		}
		if exists {
			l.logger.DebugContext(ctx, "completion already notified", "order_id", p.OrderID)
			return nil, uow.Commit(ctx)
		}
	}

	stored, err := notification.NewNotification(
		recipient.accountID, n.to, n.kind,
		notification.Content{Title: n.title, Message: n.message},
		notification.Related{
			OrderID:     kernel.IDPtr(p.OrderID),
			PerformerID: kernel.IDPtr(p.PerformerID),
			CustomerID:  kernel.IDPtr(p.CustomerID),
		},
		l.clock.Now(),
	)
	if err != nil {
		return nil, err
	}
	if err = notifications.Add(ctx, stored); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}
